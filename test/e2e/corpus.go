package e2e

import (
	"fmt"
	"strings"
)

// corpusPaper is one fixture entry for the end-to-end flow.
type corpusPaper struct {
	Title   string
	Authors []string
	Href    string
}

// corpus mimics a small proceedings listing. Titles are chosen so keyword
// queries have unambiguous expected hits.
var corpus = []corpusPaper{
	{
		Title:   "Attention Is All You Need",
		Authors: []string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar"},
		Href:    "/paper_files/paper/2024/hash/aaa111-Abstract.html",
	},
	{
		Title:   "Graph Attention Networks",
		Authors: []string{"Petar Velickovic", "Guillem Cucurull"},
		Href:    "/paper_files/paper/2024/hash/bbb222-Abstract.html",
	},
	{
		Title:   "Deep Residual Learning for Image Recognition",
		Authors: []string{"Kaiming He", "Xiangyu Zhang"},
		Href:    "/paper_files/paper/2024/hash/ccc333-Abstract.html",
	},
	{
		Title:   "Denoising Diffusion Probabilistic Models",
		Authors: []string{"Jonathan Ho", "Ajay Jain", "Pieter Abbeel"},
		Href:    "/paper_files/paper/2024/hash/ddd444-Abstract.html",
	},
	{
		Title:   "Language Models are Few-Shot Learners",
		Authors: []string{"Tom Brown", "Benjamin Mann"},
		Href:    "/paper_files/paper/2024/hash/eee555-Abstract.html",
	},
}

// listingPage renders the corpus as the proceedings listing HTML the scraper
// expects.
func listingPage() string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><body>\n<div class=\"container\">\n<ul class=\"paper-list\">\n")
	for _, p := range corpus {
		fmt.Fprintf(&sb, "<li><a href=%q>%s</a> <i>%s</i></li>\n",
			p.Href, p.Title, strings.Join(p.Authors, ", "))
	}
	sb.WriteString("</ul>\n</div>\n</body></html>\n")
	return sb.String()
}
