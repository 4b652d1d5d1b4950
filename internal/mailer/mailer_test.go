package mailer

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/SeakMengs/AutoSig/pkg/autosig"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func TestBuildSignatureMessage(t *testing.T) {
	m := NewSendgrid("test-key", "noreply@example.com", false, zap.NewNop().Sugar())

	form := autosig.SignatureForm{
		FullName: "Jane Doe",
		JobTitle: "Engineer",
		Company:  "Acme",
		Website:  "https://x.com",
	}
	png := []byte{0x89, 'P', 'N', 'G'}

	message, err := m.buildMessage(SIGNATURE_TEMPLATE, form.FullName, "jane@example.com", NewSignatureMail(form), []Attachment{
		{FileName: autosig.FileNamePNG, ContentType: autosig.ContentTypePNG, Data: png},
	})
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}

	if message.Subject != "Your email signature for Jane Doe" {
		t.Errorf("unexpected subject %q", message.Subject)
	}
	if len(message.Personalizations) != 1 || message.Personalizations[0].To[0].Address != "jane@example.com" {
		t.Errorf("unexpected recipients %+v", message.Personalizations)
	}
	if message.MailSettings == nil || !*message.MailSettings.SandboxMode.Enable {
		t.Error("expected sandbox mode outside production")
	}

	contents := map[string]string{}
	for _, c := range message.Content {
		contents[c.Type] = c.Value
	}
	if !strings.Contains(contents["text/html"], autosig.Render(form)) {
		t.Errorf("expected the rendered signature in the html body, got %s", contents["text/html"])
	}
	if !strings.Contains(contents["text/plain"], "Engineer at Acme") {
		t.Errorf("expected the signature in the plain text body, got %s", contents["text/plain"])
	}
	if strings.Contains(contents["text/plain"], "<") {
		t.Errorf("plain text body should have no markup, got %s", contents["text/plain"])
	}

	if len(message.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(message.Attachments))
	}
	a := message.Attachments[0]
	if a.Filename != autosig.FileNamePNG || a.Content != base64.StdEncoding.EncodeToString(png) {
		t.Errorf("unexpected attachment %+v", a)
	}
}

func TestBuildMessageUnknownTemplate(t *testing.T) {
	m := NewSendgrid("test-key", "noreply@example.com", true, zap.NewNop().Sugar())
	if _, err := m.buildMessage("missing.tmpl", "x", "x@example.com", nil, nil); err == nil {
		t.Error("expected an error for a missing template")
	}
}

func TestSendRetries(t *testing.T) {
	tests := []struct {
		name             string
		failures         int32
		expectedStatus   int
		expectedBackoffs []int
		expectErr        bool
	}{
		{name: "first attempt", failures: 0, expectedStatus: http.StatusAccepted},
		{name: "succeeds on the last attempt", failures: MAX_RETRY - 1, expectedStatus: http.StatusAccepted, expectedBackoffs: []int{0, 1}},
		{name: "every attempt fails", failures: MAX_RETRY, expectedStatus: -1, expectedBackoffs: []int{0, 1}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if attempts.Add(1) <= tt.failures {
					// drops the connection, the client sees a transport error
					panic(http.ErrAbortHandler)
				}
				w.WriteHeader(http.StatusAccepted)
			}))
			defer srv.Close()

			m := NewSendgrid("test-key", "noreply@example.com", false, zap.NewNop().Sugar())
			m.client.BaseURL = srv.URL + "/v3/mail/send"
			var backoffs []int
			m.backoff = func(attempt int) { backoffs = append(backoffs, attempt) }

			form := autosig.SignatureForm{FullName: "Jane Doe"}
			status, err := m.Send(SIGNATURE_TEMPLATE, form.FullName, "jane@example.com", NewSignatureMail(form))
			if (err != nil) != tt.expectErr {
				t.Fatalf("expected error %v, got %v", tt.expectErr, err)
			}
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
			if diff := cmp.Diff(tt.expectedBackoffs, backoffs); diff != "" {
				t.Errorf("backoffs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
