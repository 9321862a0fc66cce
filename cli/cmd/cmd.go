package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/openr/log"
	"github.com/ardnew/openr/prop"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	sourceFilesKey struct{}
	outputKey      struct{}
	inputKey       struct{}

	// SourceFiles is the set of Sources documents named on the command line.
	SourceFiles interface {
		IsZero() bool
		Stdin() io.Reader
		Names() []string
		Decode(ctx context.Context) (yaml.MapSlice, error)
	}

	sourceFile struct {
		name string
		r    io.Reader
	}

	sourceFiles struct {
		stdin    io.Reader
		read     []sourceFile
		hasStdin bool
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.read) == 0 && !s.hasStdin }

// Stdin returns the standard input reader if "-" was given as a source, or
// nil otherwise.
func (s *sourceFiles) Stdin() io.Reader {
	if s.hasStdin {
		return s.stdin
	}

	return nil
}

// Names returns the source names in the order they are decoded.
func (s *sourceFiles) Names() []string {
	names := make([]string, 0, len(s.read)+1)
	for _, f := range s.read {
		names = append(names, f.name)
	}

	if s.hasStdin {
		names = append(names, stdinSource)
	}

	return names
}

// Decode reads every source as a separate document and merges them with
// [prop.Merge]. Files are closed once read. Decode consumes the sources,
// so it can only be called once.
func (s *sourceFiles) Decode(ctx context.Context) (yaml.MapSlice, error) {
	files := s.read
	if s.hasStdin {
		files = append(files, sourceFile{name: stdinSource, r: s.stdin})
	}

	trees := make([]any, 0, len(files))

	for i, f := range files {
		tree, err := readTree(ctx, f.name, f.r)
		if err != nil {
			closeSources(files[i:])

			return nil, err
		}

		closeSources(files[i : i+1])

		trees = append(trees, tree)
	}

	return prop.Merge(trees...), nil
}

// closeSources closes every file in files. Standard input is left open.
func closeSources(files []sourceFile) {
	for _, f := range files {
		if c, ok := f.r.(io.Closer); ok && f.name != stdinSource {
			c.Close()
		}
	}
}

// fileKey uniquely identifies a file by its device and inode numbers.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource names standard input wherever a file name is expected.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context carrying the given source
// documents.
//
// Duplicates are dropped by comparing device/inode pairs after resolving
// symlinks. Every "-" is replaced with a single standard input source that
// is decoded after all regular files.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources, inputFrom(ctx)))
}

func buildSourceFiles(sources []string, stdin io.Reader) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	srcs := sourceFiles{
		stdin: stdin,
		read:  make([]sourceFile, 0, len(sources)),
	}
	seen := make(map[fileKey]struct{})

	var (
		stdinKey fileKey
		keyed    bool
	)

	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			stdinKey, keyed = makeFileKey(info)
		}
	}

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		reader, key, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		if keyed && key == stdinKey {
			if c, ok := reader.(io.Closer); ok {
				c.Close()
			}

			srcs.hasStdin = true

			continue
		}

		srcs.read = append(srcs.read, sourceFile{name: src, r: reader})
	}

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// openUniqueFile opens the file at path unless a file with the same
// device/inode pair was already opened. It reports false if the file is a
// duplicate or cannot be opened.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fileKey{}, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, fileKey{}, false
	}

	if _, exists := seen[key]; exists {
		return nil, key, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, key, false
	}

	return file, key, true
}

func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}

func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// decodeSources returns the merged Sources tree, or an empty mapping if no
// sources were given.
func decodeSources(ctx context.Context) (yaml.MapSlice, error) {
	src := sourceFilesFrom(ctx)
	if src == nil || src.IsZero() {
		return yaml.MapSlice{}, nil
	}

	tree, err := src.Decode(ctx)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "decoded sources",
		slog.Any("files", src.Names()),
		slog.Int("keys", len(tree)),
	)

	return tree, nil
}

// WithOutput returns a new context.Context whose commands write results to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// WithInput returns a new context.Context whose commands read "-" from r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// readFile decodes the document at path, or standard input if path is "-".
func readFile(ctx context.Context, path string) (any, error) {
	if path == stdinSource {
		return readTree(ctx, path, inputFrom(ctx))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, prop.ErrReadInput.Wrap(err).With(slog.String("file", path))
	}
	defer f.Close()

	return readTree(ctx, path, f)
}

func readTree(ctx context.Context, name string, r io.Reader) (any, error) {
	tree, err := prop.ReadTree(ctx, r)
	if err != nil {
		return nil, prop.WrapError(err).With(slog.String("file", name))
	}

	return tree, nil
}
