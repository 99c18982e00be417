// Package processor turns markdown bodies into translatable nodes and
// reassembles them: inline tokens are protected behind placeholders, long
// text is chunked at paragraph boundaries and fenced code is left alone.
package processor

import "github.com/ZaguanLabs/mdxlai"

// ContentProcessor is an alias to the main package interface.
type ContentProcessor = mdxlai.ContentProcessor

// TextNode is an alias to the main package type.
type TextNode = mdxlai.TextNode
