package patch

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseSingleRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Record
	}{
		{
			name:  "add_conn",
			input: "add_conn R1-1 VCC\n",
			want:  Record{Kind: AddConnection, Line: 1, ID: "R1-1", Net: "VCC"},
		},
		{
			name:  "del_conn",
			input: "del_conn U3-14 gnd\n",
			want:  Record{Kind: DeleteConnection, Line: 1, ID: "U3-14", Net: "gnd"},
		},
		{
			name:  "change_attrib keeps case",
			input: "change_attrib U1 Value 4K7\n",
			want:  Record{Kind: ChangeAttribute, Line: 1, ID: "U1", Attrib: "Value", Value: "4K7"},
		},
		{
			name:  "net_info with members",
			input: "net_info GND U1-4 C1-2 C2-2\n",
			want:  Record{Kind: NetInfo, Line: 1, ID: "GND", Members: []string{"U1-4", "C1-2", "C2-2"}},
		},
		{
			name:  "net_info without members",
			input: "net_info EMPTY\n",
			want:  Record{Kind: NetInfo, Line: 1, ID: "EMPTY"},
		},
		{
			name:  "no trailing newline",
			input: "add_conn R1-1 VCC",
			want:  Record{Kind: AddConnection, Line: 1, ID: "R1-1", Net: "VCC"},
		},
		{
			name:  "comment glued to last word",
			input: "add_conn R1-1 VCC# from layout\n",
			want:  Record{Kind: AddConnection, Line: 1, ID: "R1-1", Net: "VCC"},
		},
		{
			name:  "tabs and CRLF",
			input: "\tadd_conn \t R1-1\t\tVCC \r\n",
			want:  Record{Kind: AddConnection, Line: 1, ID: "R1-1", Net: "VCC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input, "test.bap")
			if err != nil {
				t.Fatalf("ParseString failed: %v", err)
			}
			if diff := cmp.Diff([]Record{tt.want}, got); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	plain := "add_conn R1-1 VCC\ndel_conn R2-2 GND\nchange_attrib R1 value 10k\n"
	noisy := `# generated by layout

add_conn R1-1 VCC   # keep
# another comment

del_conn R2-2 GND

	# indented comment
change_attrib R1 value 10k
`
	want, err := ParseString(plain, "plain.bap")
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	got, err := ParseString(noisy, "noisy.bap")
	if err != nil {
		t.Fatalf("noisy: %v", err)
	}

	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Record{}, "Line")); diff != "" {
		t.Errorf("comments changed the records (-want +got):\n%s", diff)
	}

	lines := []int{got[0].Line, got[1].Line, got[2].Line}
	if diff := cmp.Diff([]int{3, 6, 9}, lines); diff != "" {
		t.Errorf("line numbers mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "# only a comment", "   \n\t\n"} {
		got, err := ParseString(input, "empty.bap")
		if err != nil {
			t.Errorf("%q: unexpected error %v", input, err)
		}
		if len(got) != 0 {
			t.Errorf("%q: expected no records, got %v", input, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		msg   string
	}{
		{"unknown opcode", "frobnicate X Y\n", 1, "unknown opcode"},
		{"unknown opcode after good lines", "add_conn R1-1 VCC\n\nconnect R2-1 GND\n", 3, "unknown opcode"},
		{"add_conn missing net", "add_conn R1-1\n", 1, "needs 2 arguments"},
		{"del_conn too many", "del_conn R1-1 GND extra\n", 1, "takes 2 arguments"},
		{"change_attrib missing value", "# c\nchange_attrib U1 value\n", 2, "needs 3 arguments"},
		{"net_info missing name", "net_info\n", 1, "needs a net name"},
		{"opcode is case sensitive", "ADD_CONN R1-1 VCC\n", 1, "unknown opcode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input, "bad.bap")
			if err == nil {
				t.Fatalf("expected error, got records %v", got)
			}
			if got != nil {
				t.Errorf("partial records leaked: %v", got)
			}

			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if serr.Line != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, serr.Line)
			}
			if !strings.Contains(serr.Msg, tt.msg) {
				t.Errorf("expected message containing %q, got %q", tt.msg, serr.Msg)
			}
			if !strings.Contains(err.Error(), "bad.bap") {
				t.Errorf("error should name the file: %v", err)
			}
		})
	}
}

func TestRecordString(t *testing.T) {
	input := "add_conn R1-1 VCC\ndel_conn R2-2 GND\nchange_attrib R1 value 10k\nnet_info GND U1-4 C1-2\nnet_info NC\n"
	records, err := ParseString(input, "rt.bap")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	var lines []string
	for _, r := range records {
		lines = append(lines, r.String())
	}
	if got := strings.Join(lines, "\n") + "\n"; got != input {
		t.Errorf("String() did not reproduce the input:\n%s", got)
	}
}
