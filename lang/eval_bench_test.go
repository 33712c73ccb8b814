package lang

import (
	"context"
	"strings"
	"testing"
)

// BenchmarkRender benchmarks the full parse and evaluate pipeline.
func BenchmarkRender(b *testing.B) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "plain_text",
			input: strings.Repeat("lorem ipsum dolor sit amet ", 20),
		},
		{
			name:  "variables",
			input: strings.Repeat("{cool} and {cool} ", 20),
		},
		{
			name:  "nested_calls",
			input: "[lower([lower([lower([lower(DEEP)])])])]",
		},
		{
			name:  "example",
			input: "This is an {cool} [lower(MOMENT)]",
		},
	}

	r := testRegistry()
	r.SetVariable("cool", String("EPIC COOL BEANS"))

	ctx := context.Background()

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				if _, err := r.Render(ctx, tt.input); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkParse benchmarks tokenizing and building alone.
func BenchmarkParse(b *testing.B) {
	input := strings.Repeat("[f('''a,b''', {x}, [g(y)])] text ", 10)
	ctx := context.Background()

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Parse(ctx, input); err != nil {
			b.Fatal(err)
		}
	}
}
