package controllers

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/smart450/site/middleware"
	"github.com/smart450/site/repositories"
)

const indexFile = "index.html"

// Files that share the document root but must never be served
var deniedFiles = map[string]bool{
	repositories.AccessLogFile:   true,
	repositories.AccessStatsFile: true,
	repositories.ContactsFile:    true,
}

// StaticController serves the site's files from the document root
type StaticController struct {
	root fs.FS
}

// NewStaticController creates a static controller rooted at docRoot
func NewStaticController(docRoot string) *StaticController {
	return &StaticController{
		root: os.DirFS(docRoot),
	}
}

// Index handles GET /
func (c *StaticController) Index(w http.ResponseWriter, r *http.Request) {
	c.serveFile(w, r, indexFile)
}

// Serve handles every path no other route claims
func (c *StaticController) Serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	for _, segment := range strings.Split(r.URL.Path, "/") {
		if segment == ".." {
			http.NotFound(w, r)
			return
		}
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = indexFile
	}
	c.serveFile(w, r, name)
}

func (c *StaticController) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	if !fs.ValidPath(name) || isDenied(name) {
		http.NotFound(w, r)
		return
	}

	f, info, err := c.open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("⚠️  Failed to open %s: %v", name, err)
		}
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	content, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, middleware.MsgInternalError, http.StatusInternalServerError)
		return
	}

	setStaticHeaders(w.Header(), info.Name())
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

// open opens name, falling back to the directory's index.html
func (c *StaticController) open(name string) (fs.File, fs.FileInfo, error) {
	f, err := c.root.Open(name)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.IsDir() {
		return f, info, nil
	}
	f.Close()

	index := path.Join(name, indexFile)
	if name == "." {
		index = indexFile
	}
	f, err = c.root.Open(index)
	if err != nil {
		return nil, nil, err
	}
	info, err = f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, nil, fs.ErrNotExist
	}
	return f, info, nil
}

// isDenied reports whether name is telemetry, contact data or a dot-file
func isDenied(name string) bool {
	for _, segment := range strings.Split(name, "/") {
		if strings.HasPrefix(segment, ".") && segment != "." {
			return true
		}
	}
	base := path.Base(name)
	return deniedFiles[base] || strings.HasPrefix(base, repositories.ContactsFile+".corrupt-")
}

// setStaticHeaders applies the caching policy for a served file
func setStaticHeaders(h http.Header, name string) {
	switch strings.ToLower(path.Ext(name)) {
	case ".html":
		h.Set("Cache-Control", "no-cache")
		middleware.SetSecurityHeaders(h)
	case ".mp4":
		h.Set("Cache-Control", "public, max-age=31536000")
		h.Set("Content-Type", "video/mp4")
	default:
		h.Set("Cache-Control", "public, max-age=31536000")
	}
}
