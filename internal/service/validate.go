package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationError carries a field-level, user-facing message. Handlers map
// it to a 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErr(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Validation regexes mirror the rules the deployed frontend was built
// against.
var (
	emailRegex    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	lettersRegex  = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]+$`)
	colorRegex    = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s/-]+$`)
	phoneRegex    = regexp.MustCompile(`^[0-9]{7,15}$`)
	whatsappRegex = regexp.MustCompile(`^\+?[0-9\s\-()]{10,15}$`)
	imgRegex      = regexp.MustCompile(`^https://res\.cloudinary\.com/.+/.+\.(jpg|jpeg|png|webp)$`)
)

const (
	passwordMinLen = 6
	passwordMaxLen = 15
)

// normalize uppercases and trims user text; applied to every text field
// except contact numbers, image URLs and dates.
func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// runeLen counts characters, not bytes; accented letters count as one.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func validatePassword(password string) error {
	if n := runeLen(password); n < passwordMinLen || n > passwordMaxLen {
		return validationErr("La contraseña debe tener entre %d y %d caracteres", passwordMinLen, passwordMaxLen)
	}
	return nil
}

func validateImg(img string) error {
	if !imgRegex.MatchString(img) {
		return validationErr("La URL de imagen no es válida")
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
