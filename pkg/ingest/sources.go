package ingest

// DefaultSources are the pages loaded when no sources are configured.
var DefaultSources = []string{
	"https://en.wikipedia.org/wiki/Formula_One",
	"https://en.wikipedia.org/wiki/2022_Formula_One_World_Championship",
	"https://en.wikipedia.org/wiki/2023_Formula_One_World_Championship",
	"https://en.wikipedia.org/wiki/2024_Formula_One_World_Championship",
	"https://www.formula1.com/en/results/2024/races",
}
