package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyURL(t *testing.T) {
	assert.Equal(t, "noticia-importante", FriendlyURL("Notícia Importante!"))
	assert.Equal(t, "sem-titulo", FriendlyURL("SEM TITULO"))
	assert.Equal(t, "sessao-ordinaria-45", FriendlyURL("Sessão Ordinária 45"))
}

func TestFriendlyURL_Deterministic(t *testing.T) {
	first := FriendlyURL("Resultado do Concurso")
	second := FriendlyURL("Resultado do Concurso")
	assert.Equal(t, first, second)
}
