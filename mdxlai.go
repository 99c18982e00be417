// Package mdxlai migrates MDX documentation into English and Simplified
// Chinese variants.
//
// The root package holds the translation engine: a Translator that routes
// text through a cache and a text-in/text-out provider with retry and
// fallback, plus the content-processor contract used to translate whole
// MDX bodies without corrupting code, links or markup.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/mdxlai"
//	    "github.com/ZaguanLabs/mdxlai/cache"
//	    "github.com/ZaguanLabs/mdxlai/processor"
//	    "github.com/ZaguanLabs/mdxlai/provider"
//	)
//
//	func main() {
//	    store := cache.LoadFileCache(".translation_cache.json", nil)
//	    t := mdxlai.NewTranslator(provider.NewGoogleProvider(provider.GoogleConfig{}),
//	        mdxlai.WithCache(store),
//	    )
//
//	    proc := processor.NewMarkdownProcessor(mdxlai.LocaleZH)
//	    result, err := t.Process(context.Background(), body, proc, mdxlai.LangEnglish, mdxlai.LangChinese)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.Content)
//	    _ = t.Save()
//	}
package mdxlai
