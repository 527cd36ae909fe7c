package javadoc

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "inline code and link",
			input: "Use {@code x} and {@link java.util.List#add(int, Object)}.",
			want:  "Use `x` and `List.add()`.",
		},
		{
			name:  "html and entities",
			input: "<b>bold</b> &lt;T&gt;",
			want:  "**bold** <T>",
		},
		{
			name:  "preformatted code",
			input: "<pre>{@code\nint x;\nint y;\n}</pre>",
			want:  "```java\nint x;\nint y;\n```",
		},
		{
			name:  "deprecated only",
			input: "@deprecated use bar",
			want:  "**Deprecated.** use bar",
		},
		{
			name: "block tags",
			input: "Returns the sum.\n" +
				"@param a the first\n" +
				"@param <T> the type\n" +
				"@return the result\n" +
				"@throws IllegalArgumentException if negative\n" +
				"@see java.util.List#add(int, Object) adding\n" +
				"@since 1.0\n",
			want: "Returns the sum.\n\n" +
				"**Type Parameters:**\n- `<T>` the type\n\n" +
				"**Parameters:**\n- `a` the first\n\n" +
				"**Returns:** the result\n\n" +
				"**Throws:**\n- `IllegalArgumentException` if negative\n\n" +
				"**See Also:**\n- adding\n\n" +
				"**Since:** 1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(Parse(tt.input)); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPlainText(t *testing.T) {
	got := FormatPlainText(Parse("Use {@code x} and {@link Foo label}."))
	if want := "Use x and label."; got != want {
		t.Errorf("FormatPlainText() = %q, want %q", got, want)
	}
}

func TestFormatNil(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := FormatSummary(nil); got != "" {
		t.Errorf("FormatSummary(nil) = %q, want empty", got)
	}
}
