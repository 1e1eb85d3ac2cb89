package rules

import (
	"testing"

	"github.com/scanlens/scanlens/internal/types"
)

func TestJSInnerHTMLXSS(t *testing.T) {
	src := "const el = document.getElementById('x');\nel.innerHTML = userInput;\n"
	fs := runRule(t, "js-innerhtml-xss", types.LangJavaScript, src)
	if len(fs) != 1 || fs[0].Line != 2 {
		t.Fatalf("expected 1 issue at line 2, got %+v", fs)
	}
}

func TestJSRulesApplyToTypeScript(t *testing.T) {
	src := "eval(payload);\n"
	fs := runRule(t, "js-dangerous-eval", types.LangTypeScript, src)
	if len(fs) != 1 {
		t.Fatalf("expected eval rule to fire for typescript, got %d", len(fs))
	}
}

func TestJSWebStorageToken(t *testing.T) {
	src := "localStorage.setItem('authToken', token);\nlocalStorage.setItem('theme', 'dark');\n"
	fs := runRule(t, "js-webstorage-token", types.LangJavaScript, src)
	if len(fs) != 1 || fs[0].Line != 1 {
		t.Fatalf("expected only the token write flagged, got %+v", fs)
	}
}

func TestJSVarAndConsole(t *testing.T) {
	src := "var count = 0;\nconsole.log(count);\nlet ok = true;\n"
	if fs := runRule(t, "js-var-declaration", types.LangJavaScript, src); len(fs) != 1 || fs[0].Line != 1 {
		t.Fatalf("var rule: got %+v", fs)
	}
	if fs := runRule(t, "js-console-log", types.LangJavaScript, src); len(fs) != 1 || fs[0].Line != 2 {
		t.Fatalf("console rule: got %+v", fs)
	}
}

func TestJSLooseEquality(t *testing.T) {
	src := "if (a == b) {}\nif (a === b) {}\nif (a != b) {}\n"
	fs := runRule(t, "js-loose-equality", types.LangJavaScript, src)
	if len(fs) != 2 {
		t.Fatalf("expected lines 1 and 3 flagged, got %+v", fs)
	}
}
