package minifier

import (
	"strings"
	"testing"

	"github.com/kamal-hamza/assethat/internal/core/domain"
)

func TestMinifier_CSS(t *testing.T) {
	engines := []string{EngineMinify, EngineCSSMin}

	for _, engine := range engines {
		t.Run(engine, func(t *testing.T) {
			m, err := New(engine, "")
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			src := "/* layout */\na {\n  color : red ;\n}\n"
			out, err := m.Minify(domain.KindCSS, []byte(src))
			if err != nil {
				t.Fatalf("Minify failed: %v", err)
			}

			if len(out) >= len(src) {
				t.Errorf("expected output to shrink, got %q", string(out))
			}
			if !strings.Contains(string(out), "color:red") {
				t.Errorf("expected declaration to survive, got %q", string(out))
			}
			if strings.Contains(string(out), "layout") {
				t.Errorf("expected comment to be removed, got %q", string(out))
			}
		})
	}
}

func TestMinifier_CSSKeepsURLs(t *testing.T) {
	m, err := New("", "")
	if err != nil {
		t.Fatal(err)
	}

	out, err := m.Minify(domain.KindCSS, []byte("body {\n  background: url(images/bg.png);\n}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "images/bg.png") {
		t.Errorf("expected url target to survive, got %q", string(out))
	}
}

func TestMinifier_JS(t *testing.T) {
	m, err := New("", EngineMinify)
	if err != nil {
		t.Fatal(err)
	}

	src := "// greet\nfunction greet ( name ) {\n  return 'hello ' + name ;\n}\n"
	out, err := m.Minify(domain.KindJS, []byte(src))
	if err != nil {
		t.Fatalf("Minify failed: %v", err)
	}

	if len(out) >= len(src) {
		t.Errorf("expected output to shrink, got %q", string(out))
	}
	if strings.Contains(string(out), "// greet") {
		t.Errorf("expected comment to be removed, got %q", string(out))
	}
}

func TestMinifier_UnknownEngine(t *testing.T) {
	if _, err := New("yui", ""); err == nil {
		t.Error("expected error for unknown CSS engine")
	}
	if _, err := New("", "closure"); err == nil {
		t.Error("expected error for unknown JS engine")
	}
}
