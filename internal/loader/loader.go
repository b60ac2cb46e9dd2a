package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// Loader implements typedesc.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the top-level paramgen package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ typedesc.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options typedesc.LoaderOptions) typedesc.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src typedesc.Source) (typedesc.Document, error) {
	if src == nil {
		return typedesc.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case typedesc.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case typedesc.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case typedesc.SourceKindURL:
		if !l.allowHTTP {
			return typedesc.Document{}, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("loader: unsupported source kind")
	}
	if err != nil {
		return typedesc.Document{}, err
	}

	return typedesc.NewDocument(src, data)
}
