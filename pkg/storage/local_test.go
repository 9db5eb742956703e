package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PrefixesDoNotCollide(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	proof := []byte("full-size proof bytes")
	uploaded, err := s.Upload(ctx, &UploadObject{
		Prefix:   "proofs",
		FileName: "1001_20240101000000_abc.png",
		Mime:     "image/png",
		Data:     proof,
	})
	require.NoError(t, err)
	require.Equal(t, "proofs/1001_20240101000000_abc.png", uploaded.FileName)
	require.Equal(t, "/uploads/proofs/1001_20240101000000_abc.png", uploaded.Url)

	// A thumbnail under the same generated name must not replace the proof.
	_, err = s.Upload(ctx, &UploadObject{
		Prefix:   "thumbnails",
		FileName: "1001_20240101000000_abc.png",
		Mime:     "image/png",
		Data:     []byte("tiny thumbnail"),
	})
	require.NoError(t, err)

	got, err := s.Download(ctx, uploaded.FileName)
	require.NoError(t, err)
	require.Equal(t, proof, got)
}

func TestLocalStorage_RejectsEscapingNames(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Download(context.Background(), "../outside")
	require.Error(t, err)
}
