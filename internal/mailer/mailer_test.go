package mailer

import (
	"strings"
	"testing"
	"time"
)

func TestRenderInvitation(t *testing.T) {
	expires := time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC)
	subject, body, err := RenderInvitation("Iron Temple", "coach", "https://boxtrack.app/invite/abc.def", expires)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(subject, "Iron Temple") {
		t.Fatalf("subject should name the box, got %q", subject)
	}
	for _, want := range []string{"Iron Temple", "coach", "https://boxtrack.app/invite/abc.def", "September 4, 2026"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestRenderInvitationEscapesHTML(t *testing.T) {
	_, body, err := RenderInvitation(`<script>alert("x")</script>`, "member", "https://boxtrack.app/invite/t", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatal("box name must be escaped")
	}
}
