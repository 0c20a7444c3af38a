package rescale

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/go-openapi/runtime"
)

const (
	uploadPath  = "files/contents/"
	uploadField = "file"
)

// File is an input file of an analysis.
//
// A File is either pending upload, backed by a local path or an in-memory
// blob, or uploaded, identified by the id the platform assigned. The
// transition is one-way: once a File has an id, [File.Upload] fails.
//
//	f := rescale.NewFile("model.inp")
//	if err := f.Upload(ctx, client); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(f.ID())
type File struct {
	path    string
	name    string
	content []byte
	id      string
}

// NewFile returns a File pending upload of the file at path.
// The file is opened only when it is uploaded.
func NewFile(path string) *File {
	return &File{path: path, name: filepath.Base(path)}
}

// NewFileFromContent returns a File pending upload of content under name.
func NewFileFromContent(name string, content []byte) *File {
	if content == nil {
		content = []byte{}
	}
	return &File{name: name, content: content}
}

// NewFileFromString is [NewFileFromContent] for text.
func NewFileFromString(name, content string) *File {
	return NewFileFromContent(name, []byte(content))
}

// LoadFile returns a File referring to an already uploaded file.
func LoadFile(id string) *File {
	return &File{id: id}
}

// ID returns the platform id, or "" while the file is pending.
func (f *File) ID() string {
	return f.id
}

// Name returns the file name. After upload this is the name the platform
// recorded; for files loaded by id it is empty.
func (f *File) Name() string {
	return f.name
}

// IsUploaded reports whether the file has a platform id.
func (f *File) IsUploaded() bool {
	return f.id != ""
}

// Upload sends the file content to the platform and records the returned id.
//
// Upload fails with [ErrInvalidState] if the file already has an id. On
// any failure the File is left pending.
func (f *File) Upload(ctx context.Context, t Transport) error {
	if f.id != "" {
		return invalidState("file already uploaded (id %s)", f.id)
	}

	r, err := f.open()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	resp, err := t.PostMultipart(ctx, uploadPath, uploadField, r)
	if err != nil {
		return err
	}

	var info FileInfo
	if err := resp.Decode(&info); err != nil {
		return err
	}
	if info.ID == "" {
		return newError(CodeRequest, "upload response has no file id", resp.Status, nil)
	}

	f.id = info.ID
	if info.Name != "" {
		f.name = info.Name
	}
	return nil
}

// EnsureID uploads the file if it is still pending and returns a reference
// to it. Uploaded files are returned without a network call.
func (f *File) EnsureID(ctx context.Context, t Transport) (FileRef, error) {
	if f.id == "" {
		if err := f.Upload(ctx, t); err != nil {
			return FileRef{}, err
		}
	}
	return FileRef{ID: f.id}, nil
}

func (f *File) open() (runtime.NamedReadCloser, error) {
	if f.content != nil {
		return runtime.NamedReader(f.name, bytes.NewReader(f.content)), nil
	}
	if f.path == "" {
		return nil, invalidState("file has neither a path nor content")
	}
	fd, err := os.Open(f.path)
	if err != nil {
		return nil, newError(CodeTransport, "failed to open "+f.path, 0, err)
	}
	return fd, nil
}

// GetFile returns the metadata of an uploaded file.
func (c *Client) GetFile(ctx context.Context, id string) (*FileInfo, error) {
	if id == "" {
		return nil, newError(CodeValidation, "file id is required", 0, nil)
	}
	resp, err := c.Get(ctx, "files/"+id+"/")
	if err != nil {
		return nil, err
	}
	var info FileInfo
	if err := resp.Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
