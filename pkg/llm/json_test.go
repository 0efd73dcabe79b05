package llm

import "testing"

func TestParseJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantKey string
		wantErr bool
	}{
		{
			name:    "plain object",
			raw:     `{"overview": "요금제 문의 상담"}`,
			wantKey: "overview",
		},
		{
			name:    "object wrapped in prose",
			raw:     "분석 결과입니다:\n{\"overview\": \"요금제 문의\"}\n이상입니다.",
			wantKey: "overview",
		},
		{
			name:    "markdown fenced object",
			raw:     "```json\n{\"overview\": \"보험 상담\"}\n```",
			wantKey: "overview",
		},
		{
			name:    "nested braces in prose",
			raw:     `result: {"a": {"b": 1}} done`,
			wantKey: "a",
		},
		{
			name:    "no object at all",
			raw:     "죄송합니다, 분석할 수 없습니다.",
			wantErr: true,
		},
		{
			name:    "broken span",
			raw:     `{"overview": `,
			wantErr: true,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSONObject(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := got[tt.wantKey]; !ok {
				t.Errorf("parsed object missing key %q: %v", tt.wantKey, got)
			}
		})
	}
}
