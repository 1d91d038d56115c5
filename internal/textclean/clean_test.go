package textclean

import "testing"

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain telugu untouched", "ధర్మక్షేత్రే కురుక్షేత్రే", "ధర్మక్షేత్రే కురుక్షేత్రే"},
		{"strips bold markers", "**ధర్మం** అంటే కర్తవ్యం", "ధర్మం అంటే కర్తవ్యం"},
		{"removes parenthetical and surrounding space", "కర్మ (action) యోగం", "కర్మయోగం"},
		{"removes trailing parenthetical", "సమత్వమే యోగం (సమత్వం యోగ ఉచ్యతే)", "సమత్వమే యోగం"},
		{"removes multiple parentheticals", "a (one) b (two) c", "abc"},
		{"trims whitespace", "  అర్జున విషాదం \n", "అర్జున విషాదం"},
		{"bold inside parenthetical", "శ్లోకం (**note**)", "శ్లోకం"},
		{"unclosed parenthesis left alone", "శ్లోకం (సగం", "శ్లోకం (సగం"},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"ధర్మం అంటే కర్తవ్యం",
		"**కర్మ** (action) యోగం",
		"  వేదాల సారం  ",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if twice != once {
			t.Errorf("Clean(Clean(%q)) = %q, want %q", in, twice, once)
		}
	}
}
