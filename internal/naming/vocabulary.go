package naming

import (
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/barun-bash/figma-to-react/internal/errors"
)

// Vocabulary maps non-Latin words to English identifier words.
// It is immutable after construction and safe to share between goroutines.
type Vocabulary struct {
	words  map[string]string
	maxLen int // longest key, in runes
}

// NewVocabulary copies m into a new Vocabulary. Empty keys or values are ignored.
func NewVocabulary(m map[string]string) Vocabulary {
	v := Vocabulary{words: make(map[string]string, len(m))}
	for k, w := range m {
		if k == "" || w == "" {
			continue
		}
		v.words[k] = w
		if n := utf8.RuneCountInString(k); n > v.maxLen {
			v.maxLen = n
		}
	}
	return v
}

// Lookup returns the English word for a source word.
func (v Vocabulary) Lookup(word string) (string, bool) {
	w, ok := v.words[word]
	return w, ok
}

// Len returns the number of entries.
func (v Vocabulary) Len() int {
	return len(v.words)
}

// Merge returns a new Vocabulary with other's entries layered over v's.
func (v Vocabulary) Merge(other Vocabulary) Vocabulary {
	m := make(map[string]string, len(v.words)+len(other.words))
	for k, w := range v.words {
		m[k] = w
	}
	for k, w := range other.words {
		m[k] = w
	}
	return NewVocabulary(m)
}

// LoadVocabulary reads a YAML mapping of source word to English word, e.g.
//
//	제목: title
//	버튼: button
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, errors.Wrapf(err, "reading vocabulary %s", path)
	}
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Vocabulary{}, errors.Wrapf(err, "parsing vocabulary %s", path)
	}
	return NewVocabulary(m), nil
}

// DefaultVocabulary returns the built-in table of common Korean UI words.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(map[string]string{
		"제목":   "title",
		"부제목":  "subtitle",
		"내용":   "content",
		"본문":   "body",
		"설명":   "description",
		"버튼":   "button",
		"확인":   "confirm",
		"취소":   "cancel",
		"닫기":   "close",
		"카드":   "card",
		"모달":   "modal",
		"팝업":   "popup",
		"이미지":  "image",
		"아이콘":  "icon",
		"헤더":   "header",
		"푸터":   "footer",
		"메뉴":   "menu",
		"목록":   "list",
		"리스트":  "list",
		"입력":   "input",
		"검색":   "search",
		"로그인":  "login",
		"로그아웃": "logout",
		"회원가입": "signup",
		"프로필":  "profile",
		"설정":   "settings",
		"홈":    "home",
		"배경":   "background",
		"텍스트":  "text",
		"라벨":   "label",
		"태그":   "tag",
		"탭":    "tab",
		"알림":   "notification",
		"기본":   "default",
		"주요":   "primary",
		"보조":   "secondary",
		"비활성":  "disabled",
		"활성":   "active",
		"선택":   "selected",
		"컨테이너": "container",
		"그룹":   "group",
		"영역":   "area",
		"상단":   "top",
		"하단":   "bottom",
		"왼쪽":   "left",
		"오른쪽":  "right",
	})
}
