package storage

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_GuardarAbrirEliminar(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("abc.pdf", []byte("contenido")))

	rc, err := store.Open("abc.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "contenido", string(data))

	require.NoError(t, store.Remove("abc.pdf"))
	_, err = store.Open("abc.pdf")
	assert.Error(t, err)

	// Eliminar algo que no existe no es error
	assert.NoError(t, store.Remove("abc.pdf"))
}

func TestLocalStore_NombresInvalidos(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Save("", []byte("x")))
	assert.Error(t, store.Save("../fuera.pdf", []byte("x")))
	assert.Error(t, store.Save("sub/archivo.pdf", []byte("x")))
}
