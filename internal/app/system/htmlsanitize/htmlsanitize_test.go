package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/stratalibrary/internal/app/system/htmlsanitize"
)

func TestNotes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "Shelf 3, top row", "Shelf 3, top row"},
		{"formatting kept", "<p><strong>Fragile</strong> and <em>old</em></p>", "<p><strong>Fragile</strong> and <em>old</em></p>"},
		{"list kept", "<ul><li>Vol 1</li><li>Vol 2</li></ul>", "<ul><li>Vol 1</li><li>Vol 2</li></ul>"},
		{"script removed", "<p>Hello</p><script>alert('xss')</script>", "<p>Hello</p>"},
		{"iframe removed", `<p>Map</p><iframe src="https://evil.example"></iframe>`, "<p>Map</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.Notes(tt.input); got != tt.want {
				t.Errorf("Notes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNotes_Links(t *testing.T) {
	got := htmlsanitize.Notes(`<a href="https://example.com">catalog</a>`)
	if !strings.Contains(got, "https://example.com") || !strings.Contains(got, "nofollow") {
		t.Errorf("safe link should be kept with nofollow, got %q", got)
	}

	got = htmlsanitize.Notes(`<a href="javascript:alert(1)">x</a>`)
	if strings.Contains(got, "javascript") {
		t.Errorf("javascript href should be removed, got %q", got)
	}
}

func TestNotes_RemovesHandlers(t *testing.T) {
	got := htmlsanitize.Notes(`<p onclick="alert(1)">Hi</p>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("onclick should be removed, got %q", got)
	}
}

func TestNotesPtr(t *testing.T) {
	if htmlsanitize.NotesPtr(nil) != nil {
		t.Error("nil should stay nil")
	}
	in := "<b>ok</b><script>x</script>"
	if got := htmlsanitize.NotesPtr(&in); got == nil || *got != "<b>ok</b>" {
		t.Errorf("NotesPtr = %v", got)
	}
}

func TestStripTags(t *testing.T) {
	if got := htmlsanitize.StripTags("<p>Hello <b>World</b></p>"); got != "Hello World" {
		t.Errorf("StripTags = %q", got)
	}
	if got := htmlsanitize.StripTags("Tom & Jerry"); got != "Tom & Jerry" {
		t.Errorf("StripTags should decode entities, got %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	if !htmlsanitize.IsPlainText("") || !htmlsanitize.IsPlainText("Hello") {
		t.Error("text without tags should be plain")
	}
	if htmlsanitize.IsPlainText("<p>Hello</p>") {
		t.Error("text with tags should not be plain")
	}
}
