package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// KeyKind classifies a Key.
type KeyKind uint8

const (
	// KeyKindOther is any key without a dedicated kind.
	KeyKindOther KeyKind = iota
	// KeyKindDigit is a number row or keypad digit.
	KeyKindDigit
	// KeyKindLetter is a latin letter key.
	KeyKindLetter
	// KeyKindFunction is one of F1..F25.
	KeyKindFunction
	// KeyKindEscape is the escape key.
	KeyKindEscape
)

// Key is a platform-independent key. Code holds the digit value, the lower-case letter or the
// function key number depending on Kind, and is zero otherwise.
type Key struct {
	Kind KeyKind
	Code rune
}

var (
	// KeyEscape is the escape key.
	KeyEscape = Key{Kind: KeyKindEscape}
	// KeyOther is any key that has no translation.
	KeyOther = Key{Kind: KeyKindOther}
)

// KeyDigit returns the key of digit n (0-9).
func KeyDigit(n uint8) Key {
	return Key{Kind: KeyKindDigit, Code: rune(n)}
}

// KeyLetter returns the key of a letter. Upper-case letters are folded to lower case.
func KeyLetter(r rune) Key {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return Key{Kind: KeyKindLetter, Code: r}
}

// KeyFunction returns the function key Fn.
func KeyFunction(n uint8) Key {
	return Key{Kind: KeyKindFunction, Code: rune(n)}
}

// String implements fmt.Stringer.
func (k Key) String() string {
	switch k.Kind {
	case KeyKindDigit:
		return fmt.Sprintf("Digit(%d)", k.Code)
	case KeyKindLetter:
		return fmt.Sprintf("Letter(%c)", k.Code)
	case KeyKindFunction:
		return fmt.Sprintf("F%d", k.Code)
	case KeyKindEscape:
		return "Escape"
	default:
		return "Other"
	}
}

// TranslateKey maps a GLFW key code to a Key.
//
// Parameters:
//   - key: the GLFW key
//
// Returns:
//   - Key: the translated key, KeyOther when the key has no translation
func TranslateKey(key glfw.Key) Key {
	switch {
	case key >= glfw.Key0 && key <= glfw.Key9:
		return KeyDigit(uint8(key - glfw.Key0))
	case key >= glfw.KeyKP0 && key <= glfw.KeyKP9:
		return KeyDigit(uint8(key - glfw.KeyKP0))
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return KeyLetter('a' + rune(key-glfw.KeyA))
	case key >= glfw.KeyF1 && key <= glfw.KeyF25:
		return KeyFunction(uint8(key-glfw.KeyF1) + 1)
	case key == glfw.KeyEscape:
		return KeyEscape
	default:
		return KeyOther
	}
}
