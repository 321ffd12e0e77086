package diag

import "testing"

func TestErrorRendering(t *testing.T) {
	source := "let a = \"hi\"\nnum y = @\n"
	err := New("main.mocha", source, Position{Line: 2, Column: 9},
		"Unexpected character '@'",
		"Remove or replace this character")

	want := "Error in main.mocha:2:9\n" +
		"  Unexpected character '@'\n" +
		"\n" +
		"   2 | num y = @\n" +
		"     |         ^\n" +
		"\n" +
		"Hint: Remove or replace this character\n"
	if err.Error() != want {
		t.Errorf("got:\n%s\nwant:\n%s", err.Error(), want)
	}
}

func TestErrorRenderingOutOfRangeLine(t *testing.T) {
	err := New("main.mocha", "print(\"hi\")\n", Position{Line: 9, Column: 1},
		"Unexpected end of file", "Check for unclosed blocks")

	want := "Error in main.mocha:9:1\n" +
		"  Unexpected end of file\n" +
		"\n" +
		"Hint: Check for unclosed blocks\n"
	if err.Error() != want {
		t.Errorf("got:\n%s\nwant:\n%s", err.Error(), want)
	}
}
