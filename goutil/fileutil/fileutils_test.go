package fileutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	req.NoError(fs.MkdirAll("/work/certs", 0755))
	req.NoError(afero.WriteFile(fs, "/work/.env", []byte("KUBECERT_USER=ops\n"), 0600))

	cases := []struct {
		path string
		want bool
	}{
		{"/work/.env", true},
		{"/work/certs", false},
		{"/work/missing", false},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := FileExists(fs, tc.path)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
