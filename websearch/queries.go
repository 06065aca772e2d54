package websearch

import "fmt"

// Query builders scope a raw user question to the corners of the domain
// each intent cares about, which keeps general-purpose search engines from
// drifting off topic.

// TafsirQuery scopes a query to scholarly interpretation sources.
func TafsirQuery(query string) string {
	return fmt.Sprintf("Quran tafsir interpretation: %s", query)
}

// HistoricalQuery scopes a query to circumstances-of-revelation sources.
func HistoricalQuery(query string) string {
	return fmt.Sprintf("Quran historical context asbab al-nuzul: %s", query)
}

// GeneralQuery scopes a query to the broad subject domain.
func GeneralQuery(query string) string {
	return fmt.Sprintf("Quran Islam: %s", query)
}
