package validator

import (
	"errors"
	"testing"

	"github.com/valpere/humanizer/internal/detector"
)

func newDetector(t *testing.T) *detector.Detector {
	t.Helper()
	d, err := detector.New("en", "uk", "de")
	if err != nil {
		t.Fatalf("detector.New: %v", err)
	}
	return d
}

func TestCheck_NoExpectedLanguage(t *testing.T) {
	v := New(newDetector(t), "")
	if err := v.Check("Це є тестовий текст українською мовою для перевірки."); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheck_NilDetector(t *testing.T) {
	v := New(nil, "en")
	if err := v.Check("Це є тестовий текст українською мовою для перевірки."); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheck_BlankAndShortText(t *testing.T) {
	v := New(newDetector(t), "en")
	for _, text := range []string{"", "   ", "Hallo"} {
		if err := v.Check(text); err != nil {
			t.Errorf("Check(%q) unexpected error: %v", text, err)
		}
	}
}

func TestCheck_English(t *testing.T) {
	v := New(newDetector(t), "EN")
	text := "This is a longer piece of text that should be detected as English."
	if err := v.Check(text); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheck_Mismatch(t *testing.T) {
	v := New(newDetector(t), "en")
	err := v.Check("Це є тестовий текст українською мовою для перевірки роботи валідатора.")

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mismatch.Expected != "en" || mismatch.Detected != "uk" {
		t.Errorf("unexpected mismatch %+v", mismatch)
	}
}
