// Package fallback holds the fixed component templates used when a
// component's node tree is unavailable or cannot be rendered.
package fallback

import (
	"fmt"
	"html"
	"strings"

	"github.com/barun-bash/figma-to-react/internal/codegen"
	"github.com/barun-bash/figma-to-react/internal/figma"
	"github.com/barun-bash/figma-to-react/internal/naming"
)

// Kind names a template.
type Kind string

const (
	KindModal   Kind = "modal"
	KindCard    Kind = "card"
	KindButton  Kind = "button"
	KindGeneric Kind = "generic"
)

// dispatchOrder is checked front to back; the first keyword found in the
// lower-cased component name wins.
var dispatchOrder = []Kind{KindModal, KindCard, KindButton}

// Select returns the template kind for a component name.
func Select(name string) Kind {
	lower := strings.ToLower(name)
	for _, k := range dispatchOrder {
		if strings.Contains(lower, string(k)) {
			return k
		}
	}
	return KindGeneric
}

// Bank renders templates. It is pure and safe for concurrent use.
type Bank struct {
	sanitizer *naming.Sanitizer
}

// New returns a Bank naming components with s.
func New(s *naming.Sanitizer) *Bank {
	return &Bank{sanitizer: s}
}

// For returns the template artifact for c. The result depends only on c.
func (b *Bank) For(c figma.ComponentRef) codegen.Artifact {
	name := b.sanitizer.ComponentName(c.Name)
	description := c.Description
	if description == "" {
		description = name + " component"
	}
	description = strings.ReplaceAll(strings.ReplaceAll(description, "*/", "* /"), "\n", " ")

	var body, css string
	switch Select(c.Name) {
	case KindModal:
		body, css = modalBody, modalCSS
	case KindCard:
		body, css = fmt.Sprintf(cardBody, html.EscapeString(c.ImageURL), name), cardCSS
	case KindButton:
		body, css = buttonBody, buttonCSS
	default:
		body, css = genericBody, genericCSS
	}

	styleFile := "./" + name + ".module.css"
	markup := fmt.Sprintf(moduleHeader, styleFile, description) +
		strings.ReplaceAll(body, "{{Name}}", name) +
		fmt.Sprintf("\nexport default %s;\n", name)

	return codegen.Artifact{
		MarkupSource:          markup,
		StyleSource:           css,
		SuggestedFileBaseName: name,
		StyleFile:             styleFile,
	}
}

const moduleHeader = `import React from 'react';
import classNames from 'classnames/bind';
import styles from '%s';

const cx = classNames.bind(styles);

/**
 * %s
 */
`

const modalBody = `const {{Name}} = ({ title = 'Title', content = 'Content', onClose, onConfirm, onCancel, children, ...props }) => {
  return (
    <div className={cx('container')} {...props}>
      <div className={cx('header')}>
        <h1 className={cx('title')}>{title}</h1>
        <button className={cx('close-button')} onClick={onClose}>×</button>
      </div>
      <div className={cx('body')}>
        <p className={cx('text')}>{content}</p>
      </div>
      <div className={cx('footer')}>
        <button className={cx('button', 'primary')} onClick={onConfirm}>Confirm</button>
        <button className={cx('button', 'secondary')} onClick={onCancel}>Cancel</button>
      </div>
      {children}
    </div>
  );
};
`

const cardBody = `const {{Name}} = ({ title = 'Card title', description = 'Card description', onAction, children, ...props }) => {
  return (
    <div className={cx('container')} {...props}>
      <div className={cx('image-container')}>
        <img src="%s" alt="%s" className={cx('image')} />
      </div>
      <div className={cx('content')}>
        <h2 className={cx('title')}>{title}</h2>
        <p className={cx('description')}>{description}</p>
      </div>
      <div className={cx('footer')}>
        <button className={cx('button')} onClick={onAction}>Learn more</button>
      </div>
      {children}
    </div>
  );
};
`

const buttonBody = `const {{Name}} = ({ children, variant = 'primary', ...props }) => {
  return (
    <button className={cx('button', variant)} {...props}>
      {children || 'Button'}
    </button>
  );
};
`

const genericBody = `const {{Name}} = ({ children, ...props }) => {
  return (
    <div className={cx('container')} {...props}>
      <div className={cx('content')}>
        <h2 className={cx('title')}>Title</h2>
        <p className={cx('text')}>Content</p>
      </div>
      {children}
    </div>
  );
};
`

const modalCSS = `.container {
  display: flex;
  flex-direction: column;
  position: relative;
  width: 100%;
  max-width: 500px;
  background-color: #ffffff;
  border-radius: 8px;
  box-shadow: 0 4px 12px rgba(0, 0, 0, 0.15);
  overflow: hidden;
}

.header {
  display: flex;
  justify-content: space-between;
  align-items: center;
  padding: 16px 20px;
  border-bottom: 1px solid #eaeaea;
}

.title {
  margin: 0;
  font-size: 18px;
  font-weight: 600;
  color: #333333;
}

.close-button {
  background: none;
  border: none;
  font-size: 24px;
  color: #999999;
  cursor: pointer;
}

.body {
  padding: 20px;
}

.text {
  margin: 0;
  font-size: 14px;
  line-height: 1.5;
  color: #666666;
}

.footer {
  display: flex;
  justify-content: flex-end;
  gap: 12px;
  padding: 16px 20px;
  border-top: 1px solid #eaeaea;
}

.button {
  padding: 8px 16px;
  border: none;
  border-radius: 4px;
  font-size: 14px;
  font-weight: 500;
  cursor: pointer;
}

.button.primary {
  background-color: #1677ff;
  color: #ffffff;
}

.button.secondary {
  background-color: #f5f5f5;
  color: #333333;
  border: 1px solid #d9d9d9;
}
`

const cardCSS = `.container {
  display: flex;
  flex-direction: column;
  width: 100%;
  max-width: 300px;
  background-color: #ffffff;
  border-radius: 8px;
  box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
  overflow: hidden;
}

.image-container {
  width: 100%;
  height: 160px;
  overflow: hidden;
}

.image {
  width: 100%;
  height: 100%;
  object-fit: cover;
}

.content {
  padding: 16px;
}

.title {
  margin: 0 0 8px 0;
  font-size: 16px;
  font-weight: 600;
  color: #333333;
}

.description {
  margin: 0;
  font-size: 14px;
  line-height: 1.5;
  color: #666666;
}

.footer {
  padding: 12px 16px;
  border-top: 1px solid #eaeaea;
}

.button {
  width: 100%;
  padding: 8px 0;
  background-color: #1677ff;
  color: #ffffff;
  border: none;
  border-radius: 4px;
  font-size: 14px;
  font-weight: 500;
  cursor: pointer;
}
`

const buttonCSS = `.button {
  display: inline-flex;
  align-items: center;
  justify-content: center;
  padding: 8px 16px;
  border-radius: 4px;
  font-size: 14px;
  font-weight: 500;
  cursor: pointer;
  transition: all 0.2s ease;
}

.button.primary {
  background-color: #1677ff;
  color: #ffffff;
  border: none;
}

.button.secondary {
  background-color: #ffffff;
  color: #333333;
  border: 1px solid #d9d9d9;
}

.button.danger {
  background-color: #ff4d4f;
  color: #ffffff;
  border: none;
}

.button:hover {
  opacity: 0.8;
}

.button:active {
  transform: translateY(1px);
}
`

const genericCSS = `.container {
  display: flex;
  flex-direction: column;
  position: relative;
  width: 100%;
  padding: 16px;
  background-color: #ffffff;
  border-radius: 4px;
  box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
}

.content {
  display: flex;
  flex-direction: column;
}

.title {
  margin: 0 0 12px 0;
  font-size: 18px;
  font-weight: 600;
  color: #333333;
}

.text {
  margin: 0;
  font-size: 14px;
  line-height: 1.5;
  color: #666666;
}
`
