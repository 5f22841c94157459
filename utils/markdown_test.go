package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownBasic(t *testing.T) {
	out := RenderMarkdown("## Week\n\n- **3** check-ins\n")
	if !strings.Contains(out, "<h2") {
		t.Errorf("expected heading in output, got %q", out)
	}
	if !strings.Contains(out, "<strong>3</strong>") {
		t.Errorf("expected bold count in output, got %q", out)
	}
}

func TestRenderMarkdownStripsScript(t *testing.T) {
	out := RenderMarkdown("hello <script>alert(1)</script> world")
	if strings.Contains(out, "<script") {
		t.Errorf("script tag survived sanitization: %q", out)
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("text content lost: %q", out)
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	src := "| Goal | Check-ins |\n| --- | --- |\n| Run | 4 |\n"
	out := RenderMarkdown(src)
	if !strings.Contains(out, "<table") {
		t.Errorf("expected GFM table in output, got %q", out)
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags("<b>morning run</b>"); got != "morning run" {
		t.Errorf("StripTags = %q, want %q", got, "morning run")
	}
}
