package sheets

import "testing"

func TestFindColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    Columns
		ok      bool
	}{
		{
			name:    "russian headers",
			headers: []string{"Дата", "Исходный текст", "Пол", "Текст после правок"},
			want:    Columns{Text: 1, Gender: 2, Corrected: 3},
			ok:      true,
		},
		{
			name:    "english headers",
			headers: []string{"text", "gender", "corrected_text"},
			want:    Columns{Text: 0, Gender: 1, Corrected: 2},
			ok:      true,
		},
		{
			name:    "mixed case variants",
			headers: []string{"текст", "пол", "исправленный текст"},
			want:    Columns{Text: 0, Gender: 1, Corrected: 2},
			ok:      true,
		},
		{
			name:    "first variant wins",
			headers: []string{"text", "Исходный текст", "Пол", "corrected_text"},
			want:    Columns{Text: 1, Gender: 2, Corrected: 3},
			ok:      true,
		},
		{
			name:    "missing gender",
			headers: []string{"Исходный текст", "Текст после правок"},
			ok:      false,
		},
		{
			name:    "empty header row",
			headers: []string{},
			ok:      false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindColumns(tt.headers)
			if ok != tt.ok {
				t.Fatalf("FindColumns() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("FindColumns() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCell(t *testing.T) {
	row := []string{"a", "b"}
	if got := cell(row, 1); got != "b" {
		t.Errorf("cell(row, 1) = %q, want %q", got, "b")
	}
	if got := cell(row, 3); got != "" {
		t.Errorf("cell(row, 3) = %q, want empty for an omitted trailing cell", got)
	}
}
