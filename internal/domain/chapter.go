package domain

import "fmt"

// ChapterPages locates a chapter's page images on the page-source CDN.
type ChapterPages struct {
	ChapterID string
	BaseURL   string
	Hash      string
	Filenames []string
}

// PageURLs expands the chapter into one URL per page, in reading order.
func (c ChapterPages) PageURLs() []string {
	urls := make([]string, len(c.Filenames))
	for i, name := range c.Filenames {
		urls[i] = fmt.Sprintf("%s/data/%s/%s", c.BaseURL, c.Hash, name)
	}
	return urls
}

// PageImage is a fetched page: raw bytes plus the served content type.
// Created by the corpus builder and consumed once during document assembly.
type PageImage struct {
	Index       int
	ContentType string
	Data        []byte
}
