package classdoc

import (
	"errors"
	"fmt"
	"log"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
)

// ErrGrammarUnavailable means the C# grammar could not be loaded. Without it no
// class documentation request can be served, so it is never degraded away.
var ErrGrammarUnavailable = errors.New("c# grammar unavailable")

// GrammarFunc yields the process-wide C# language.
type GrammarFunc func() (*sitter.Language, error)

// csharpGrammar initializes the grammar at most once. Concurrent first callers
// block until the in-flight load finishes and all observe the same result.
var csharpGrammar = sync.OnceValues(loadCSharpGrammar)

// Grammar returns the lazily loaded C# language.
func Grammar() (*sitter.Language, error) {
	return csharpGrammar()
}

func loadCSharpGrammar() (*sitter.Language, error) {
	lang := sitter.NewLanguage(csharp.Language())
	if lang == nil {
		return nil, ErrGrammarUnavailable
	}

	// SetLanguage rejects grammars built for an incompatible ABI.
	probe := sitter.NewParser()
	defer probe.Close()
	if err := probe.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrammarUnavailable, err)
	}

	log.Printf("classdoc: c# grammar loaded")
	return lang, nil
}
