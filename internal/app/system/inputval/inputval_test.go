package inputval

import "testing"

func TestIsPersonName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Ana", true},
		{"María José", true},
		{"Nuñez", true},
		{"Jose\u0301", true},
		{"\u0301Ana", false},
		{"O'Brien", false},
		{"Ana-Lucía", false},
		{"R2D2", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPersonName(tt.name); got != tt.want {
				t.Errorf("IsPersonName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsISBNShape(t *testing.T) {
	tests := []struct {
		isbn string
		want bool
	}{
		{"978-3-16-148410-0", true},
		{"9783161484100", true},
		{"0-306-40615-2", true},
		{"080442957X", true},
		{"080442957x", true},
		{"978 3 16 148410 0", true},
		{"978-3-16-148410-9", true}, // shape only; bad check digit is fine here
		{"12345", false},
		{"97831614841000", false},
		{"ISBN9783161484100", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.isbn, func(t *testing.T) {
			if got := IsISBNShape(tt.isbn); got != tt.want {
				t.Errorf("IsISBNShape(%q) = %v, want %v", tt.isbn, got, tt.want)
			}
		})
	}
}

func TestIsValidISBN(t *testing.T) {
	tests := []struct {
		isbn string
		want bool
	}{
		{"978-3-16-148410-0", true},
		{"9780306406157", true},
		{"0-306-40615-2", true},
		{"080442957X", true},
		{"978-3-16-148410-9", false},
		{"0-306-40615-3", false},
		{"1234567890123", false}, // ISBN-13 must start with 978/979
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.isbn, func(t *testing.T) {
			if got := IsValidISBN(tt.isbn); got != tt.want {
				t.Errorf("IsValidISBN(%q) = %v, want %v", tt.isbn, got, tt.want)
			}
		})
	}
}

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		// Valid ObjectIDs (24 hex characters)
		{"507f1f77bcf86cd799439011", true},
		{"000000000000000000000000", true},
		{"FFFFFFFFFFFFFFFFFFFFFFFF", true}, // uppercase hex is valid

		// Valid with whitespace (trimmed)
		{"  507f1f77bcf86cd799439011  ", true},

		// Invalid ObjectIDs
		{"", false},
		{"507f1f77bcf86cd79943901", false},   // too short (23 chars)
		{"507f1f77bcf86cd7994390111", false}, // too long (25 chars)
		{"507f1f77bcf86cd79943901g", false},  // invalid hex char
		{"not-a-valid-id", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsValidObjectID(tt.id); got != tt.want {
				t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type testInput struct {
		Name    string   `json:"name" validate:"notblank,max=10" label:"Full name"`
		Copies  int      `json:"copies" validate:"gte=1,lte=5" label:"Copies"`
		Tags    []string `json:"tags" validate:"min=1,dive,notblank" label:"Tags"`
		Doc     string   `json:"doc" validate:"omitempty,docnumber" label:"Document"`
		Ignored string   `json:"-"`
	}

	valid := testInput{Name: "John", Copies: 2, Tags: []string{"a"}}

	tests := []struct {
		name      string
		mutate    func(*testInput)
		wantField string
		wantFirst string
	}{
		{"valid input", func(*testInput) {}, "", ""},
		{"blank name", func(in *testInput) { in.Name = "   " }, "name", "Full name is required."},
		{"name too long", func(in *testInput) { in.Name = "VeryLongNameThatExceedsLimit" }, "name", "Full name must be at most 10 characters."},
		{"copies zero", func(in *testInput) { in.Copies = 0 }, "copies", "Copies must be at least 1."},
		{"copies high", func(in *testInput) { in.Copies = 6 }, "copies", "Copies must be at most 5."},
		{"no tags", func(in *testInput) { in.Tags = nil }, "tags", "Tags must have at least 1 item(s)."},
		{"blank tag", func(in *testInput) { in.Tags = []string{"a", " "} }, "tags[1]", "Tags entry is required."},
		{"short doc", func(in *testInput) { in.Doc = "123" }, "doc", "Document must contain 6 to 11 digits."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			result := Validate(in)

			if tt.wantFirst == "" {
				if result.HasErrors() {
					t.Fatalf("Validate() unexpected errors: %v", result.Errors)
				}
				return
			}
			if !result.HasErrors() {
				t.Fatal("Validate() HasErrors = false, want true")
			}
			if result.First() != tt.wantFirst {
				t.Errorf("Validate() First() = %q, want %q", result.First(), tt.wantFirst)
			}
			if result.Errors[0].Field != tt.wantField {
				t.Errorf("Validate() Field = %q, want %q", result.Errors[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidate_Pointer(t *testing.T) {
	type noteInput struct {
		Notes *string `json:"notes" validate:"omitempty,max=5" label:"Notes"`
	}

	if r := Validate(&noteInput{}); r.HasErrors() {
		t.Errorf("nil pointer should be skipped, got %v", r.Errors)
	}
	long := "too long for this"
	r := Validate(&noteInput{Notes: &long})
	if got := r.ByField()["notes"]; got != "Notes must be at most 5 characters." {
		t.Errorf("ByField()[notes] = %q", got)
	}
}

func TestResult_All(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		r := &Result{}
		if r.All() != "" {
			t.Errorf("All() = %q, want empty", r.All())
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		r := &Result{
			Errors: []FieldError{
				{Message: "Error 1"},
				{Message: "Error 2"},
			},
		}
		want := "Error 1; Error 2"
		if r.All() != want {
			t.Errorf("All() = %q, want %q", r.All(), want)
		}
	})
}

func TestResult_ByField_KeepsFirst(t *testing.T) {
	r := &Result{
		Errors: []FieldError{
			{Field: "title", Message: "first"},
			{Field: "title", Message: "second"},
			{Field: "kind", Message: "other"},
		},
	}
	got := r.ByField()
	if len(got) != 2 || got["title"] != "first" || got["kind"] != "other" {
		t.Errorf("ByField() = %v", got)
	}
}
