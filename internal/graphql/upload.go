package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strconv"
	"strings"
)

// Upload is a file bound to an Upload! variable. Put it (or a slice of
// them) in the variables map passed to Client.Upload.
type Upload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// Upload sends doc as a GraphQL multipart request: an operations part with
// every file replaced by null, a map part linking file parts to variable
// paths, then one part per file.
func (c *Client) Upload(ctx context.Context, doc Document, variables map[string]interface{}, out interface{}) error {
	files := make(map[string]Upload)
	stripped, _ := collectUploads("variables", variables, files).(map[string]interface{})
	if len(files) == 0 {
		return fmt.Errorf("graphql %s: no files in variables", doc.Name)
	}

	operations, err := json.Marshal(request{
		Query:         doc.Source,
		OperationName: doc.Name,
		Variables:     stripped,
	})
	if err != nil {
		return fmt.Errorf("graphql %s: encode operations: %w", doc.Name, err)
	}

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	fileMap := make(map[string][]string, len(paths))
	for i, path := range paths {
		fileMap[strconv.Itoa(i)] = []string{path}
	}
	mapPart, err := json.Marshal(fileMap)
	if err != nil {
		return fmt.Errorf("graphql %s: encode map: %w", doc.Name, err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("operations", string(operations)); err != nil {
		return err
	}
	if err := mw.WriteField("map", string(mapPart)); err != nil {
		return err
	}
	for i, path := range paths {
		if err := writeFile(mw, strconv.Itoa(i), files[path]); err != nil {
			return fmt.Errorf("graphql %s: write file %s: %w", doc.Name, path, err)
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	return c.send(ctx, doc, body.Bytes(), mw.FormDataContentType(), out)
}

func writeFile(mw *multipart.Writer, field string, file Upload) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		field, escapeQuotes(file.Filename)))
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file.Content)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// collectUploads walks value, records every Upload under its dotted path and
// returns a copy of value with uploads replaced by nil.
func collectUploads(path string, value interface{}, files map[string]Upload) interface{} {
	switch v := value.(type) {
	case Upload:
		files[path] = v
		return nil
	case *Upload:
		if v != nil {
			files[path] = *v
		}
		return nil
	case []Upload:
		out := make([]interface{}, len(v))
		for i := range v {
			files[path+"."+strconv.Itoa(i)] = v[i]
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = collectUploads(path+"."+strconv.Itoa(i), item, files)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = collectUploads(path+"."+key, item, files)
		}
		return out
	default:
		return value
	}
}
