// validate содержит прикладные валидаторы полей профиля:
// формат username и allow-list для поля link.
// Сервисный слой потребляет их через узкий интерфейс, поэтому
// конкретные правила можно менять, не трогая бизнес-логику.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minUsernameLen = 1
	maxUsernameLen = 64
)

// usernameRe — допустимые символы отображаемого имени:
// буквы, цифры, пробел, точка, дефис, подчёркивание, апостроф.
var usernameRe = regexp.MustCompile(`^[\p{L}\p{N} ._'-]+$`)

// Validator — реализация прикладных валидаторов.
// BannedHosts — запрещённые хосты для поля link (сравнение без учёта
// регистра, поддомены тоже считаются запрещёнными).
type Validator struct {
	bannedHosts []string
}

// New создаёт валидатор с заданным списком запрещённых хостов.
func New(bannedHosts []string) *Validator {
	normalized := make([]string, 0, len(bannedHosts))
	for _, h := range bannedHosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			normalized = append(normalized, h)
		}
	}

	return &Validator{bannedHosts: normalized}
}

// CheckUsername проверяет формат отображаемого имени.
// Возвращает ошибку с причиной — она попадает в деталь ответа клиенту.
func (v *Validator) CheckUsername(s string) error {
	length := utf8.RuneCountInString(s)

	if length < minUsernameLen {
		return fmt.Errorf("username is empty")
	}

	if length > maxUsernameLen {
		return fmt.Errorf("username longer than %d characters", maxUsernameLen)
	}

	if s != strings.TrimSpace(s) {
		return fmt.Errorf("username has leading or trailing spaces")
	}

	if !usernameRe.MatchString(s) {
		return fmt.Errorf("username contains forbidden characters")
	}

	return nil
}

// CheckLink проверяет, что ссылка — корректный http(s)-URL
// и её хост не входит в запрещённый список.
func (v *Validator) CheckLink(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	for _, banned := range v.bannedHosts {
		if host == banned || strings.HasSuffix(host, "."+banned) {
			return false
		}
	}

	return true
}
