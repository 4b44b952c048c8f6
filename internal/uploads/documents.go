package uploads

import "github.com/richxcame/ride-hailing-web/internal/graphql"

var (
	// SingleUploadMutation uploads one file
	SingleUploadMutation = graphql.MustDocument(`mutation SingleUpload($file: Upload!) {
  singleUpload(file: $file) {
    filename
    mimetype
    encoding
    url
  }
}`)

	// MultipleUploadMutation uploads several files in one request
	MultipleUploadMutation = graphql.MustDocument(`mutation MultipleUpload($files: [Upload!]!) {
  multipleUpload(files: $files) {
    filename
    mimetype
    encoding
    url
  }
}`)
)
