package imgbb

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUpload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("want POST, got %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key, got %q", r.URL.Query().Get("key"))
		}
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, fh, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image part missing: %v", err)
		}
		f.Close()
		if fh.Filename != "pic.jpg" {
			t.Errorf("want filename pic.jpg, got %q", fh.Filename)
		}
		w.Write([]byte(`{"success":true,"status":200,"data":{"id":"abc","url":"https://i.ibb.co/abc/pic.jpg","display_url":"https://i.ibb.co/abc/pic.jpg"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", srv.Client())
	url, err := c.Upload("pic.jpg", []byte{0xFF, 0xD8, 0xFF})
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://i.ibb.co/abc/pic.jpg" {
		t.Fatalf("bad url: %q", url)
	}
}

func TestUpload_HostRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"status":400,"error":{"message":"Invalid API key"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-key", srv.Client())
	_, err := c.Upload("pic.jpg", []byte{1, 2, 3})
	if err == nil {
		t.Fatal("want error from rejected upload")
	}
	if err.Error() != "imgbb: Invalid API key" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpload_GarbageResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", srv.Client())
	if _, err := c.Upload("pic.jpg", []byte{1}); err == nil {
		t.Fatal("want error on non-JSON response")
	}
}
