package http

import (
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachment_EscapaElNombre(t *testing.T) {
	cases := []string{
		"merged_data_2024-03-15.pdf",
		`x"; filename="evil.exe.pdf`,
		"a\r\nSet-Cookie: y=1.pdf",
		"inventario ñandú.pdf",
	}
	for _, name := range cases {
		header := attachment(name)
		assert.NotContains(t, header, "\r")
		assert.NotContains(t, header, "\n")

		// El nombre sobrevive intacto al parseo: nada se inyecta como parámetro extra.
		disposition, params, err := mime.ParseMediaType(header)
		require.NoError(t, err, header)
		assert.Equal(t, "attachment", disposition)
		assert.Equal(t, name, params["filename"])
		assert.Len(t, params, 1)
	}
}
