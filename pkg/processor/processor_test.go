package processor_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/f1gpt/internal/models"
	"github.com/xhad/f1gpt/pkg/processor"
)

func lowercase(n int, seed int64) string {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + r.Intn(26))
	}
	return string(b)
}

// overlap returns the length of the longest prefix of next that prev ends with.
func overlap(prev, next string) int {
	for k := min(len(prev), len(next)); k > 0; k-- {
		if strings.HasSuffix(prev, next[:k]) {
			return k
		}
	}
	return 0
}

func TestSplitLettersSlidingWindow(t *testing.T) {
	p := processor.New()
	text := lowercase(1024, 1)

	chunks, err := p.Split(text)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 2)

	for i, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 512, "chunk %d", i)
	}
	for i := 0; i < len(chunks)-1; i++ {
		assert.Len(t, chunks[i], 512, "only the last chunk may be short")
		assert.Equal(t, 100, overlap(chunks[i], chunks[i+1]), "chunk %d", i)
	}

	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		rebuilt.WriteString(chunks[i][overlap(chunks[i-1], chunks[i]):])
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSplitWithoutOverlap(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{ChunkSize: 512, ChunkOverlap: 0})
	text := lowercase(1024, 3)

	chunks, err := p.Split(text)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, text[:512], chunks[0])
	assert.Equal(t, text[512:], chunks[1])
}

func TestSplitWordsKeepsEveryWord(t *testing.T) {
	p := processor.New()

	words := make([]string, 400)
	for i := range words {
		words[i] = fmt.Sprintf("w%04d", i)
	}
	text := strings.Join(words, " ")

	chunks, err := p.Split(text)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	var rebuilt []string
	rebuilt = append(rebuilt, strings.Fields(chunks[0])...)
	for i := 1; i < len(chunks); i++ {
		assert.LessOrEqual(t, len(chunks[i]), 512)

		k := overlap(chunks[i-1], chunks[i])
		assert.Greater(t, k, 0, "chunk %d shares no context with the previous one", i)
		assert.LessOrEqual(t, k, 100, "chunk %d", i)

		rebuilt = append(rebuilt, strings.Fields(chunks[i][k:])...)
	}
	assert.Equal(t, words, rebuilt)
}

func TestSplitPrefersParagraphs(t *testing.T) {
	p := processor.New()
	first := strings.Repeat("a", 300)
	second := strings.Repeat("b", 300)

	chunks, err := p.Split(first + "\n\n" + second)
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, chunks)
}

func TestSplitIsDeterministic(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{ChunkSize: 64, ChunkOverlap: 16})
	text := "Formula One is the highest class of international racing.\n\n" +
		"The World Drivers' Championship has been contested since 1950.\n" +
		lowercase(300, 7)

	a, err := p.Split(text)
	require.NoError(t, err)
	b, err := p.Split(text)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSplitEmpty(t *testing.T) {
	p := processor.New()
	chunks, err := p.Split("")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestProcessor_Process(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:    50,
		ChunkOverlap: 10,
	})

	documents := []models.Document{
		{URL: "https://example.com/1", Content: "This is a test document. It contains several sentences to demonstrate text processing."},
		{URL: "https://example.com/2", Content: "short"},
	}

	processedDocs, err := p.Process(documents)
	require.NoError(t, err)
	require.Len(t, processedDocs, 2)

	assert.Equal(t, "https://example.com/1", processedDocs[0].URL)
	assert.Greater(t, len(processedDocs[0].Chunks), 1)
	assert.Contains(t, processedDocs[0].Chunks[0], "test document")
	assert.Equal(t, []string{"short"}, processedDocs[1].Chunks)
}
