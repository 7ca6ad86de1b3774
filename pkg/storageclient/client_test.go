package storageclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestObjectKeyFromURL(t *testing.T) {
	testCases := []struct {
		name   string
		bucket string
		ref    string
		want   string
	}{
		{
			name:   "full public URL keeps everything after the bucket",
			bucket: "recordings",
			ref:    "https://cdn.example.com/storage/v1/object/public/recordings/audio/rec-1.mp3",
			want:   "audio/rec-1.mp3",
		},
		{
			name:   "bare key passes through",
			bucket: "recordings",
			ref:    "audio/rec-1.mp3",
			want:   "audio/rec-1.mp3",
		},
		{
			name:   "leading slash is trimmed",
			bucket: "recordings",
			ref:    "/audio/rec-1.mp3",
			want:   "audio/rec-1.mp3",
		},
		{
			name:   "whitespace is trimmed",
			bucket: "recordings",
			ref:    "  audio/rec-1.mp3  ",
			want:   "audio/rec-1.mp3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ObjectKeyFromURL(tc.bucket, tc.ref); got != tc.want {
				t.Errorf("ObjectKeyFromURL(%q, %q) = %q, want %q", tc.bucket, tc.ref, got, tc.want)
			}
		})
	}
}

func TestDeleteObject(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	err := client.DeleteObject(context.Background(), "recordings", "https://cdn.example.com/storage/v1/object/public/recordings/audio/rec-1.mp3")
	if err != nil {
		t.Fatalf("DeleteObject returned error: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
	if gotPath != "/storage/v1/object/recordings/audio/rec-1.mp3" {
		t.Errorf("path = %q, want the bucket-scoped object path", gotPath)
	}
	if gotAuth != "Bearer service-key" {
		t.Errorf("Authorization = %q, want bearer service key", gotAuth)
	}
}

func TestDeleteObject_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Object not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	if err := client.DeleteObject(context.Background(), "recordings", "audio/missing.mp3"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestDeleteObject_EmptyKey(t *testing.T) {
	client := NewClient("http://unused", "service-key")
	if err := client.DeleteObject(context.Background(), "recordings", "   "); err == nil {
		t.Fatal("expected error for an empty object key")
	}
}
