package config

import "fmt"

// neuripsListingURL returns the NeurIPS proceedings listing URL for a year.
func neuripsListingURL(year int) string {
	return fmt.Sprintf("https://papers.nips.cc/paper_files/paper/%d", year)
}
