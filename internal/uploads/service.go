package uploads

import (
	"context"
	"fmt"

	"github.com/richxcame/ride-hailing-web/internal/graphql"
	"github.com/richxcame/ride-hailing-web/pkg/common"
)

// File is an uploaded file as stored by the API
type File struct {
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
	Encoding string `json:"encoding"`
	URL      string `json:"url"`
}

// Uploader sends multipart GraphQL requests; *graphql.Client satisfies it
type Uploader interface {
	Upload(ctx context.Context, doc graphql.Document, variables map[string]interface{}, out interface{}) error
}

// Service uploads files through the GraphQL API
type Service struct {
	client Uploader
}

// NewService creates an uploads service
func NewService(client Uploader) *Service {
	return &Service{client: client}
}

// SingleUpload uploads one file
func (s *Service) SingleUpload(ctx context.Context, file graphql.Upload) (*File, error) {
	var out struct {
		SingleUpload *File `json:"singleUpload"`
	}
	if err := s.client.Upload(ctx, SingleUploadMutation, map[string]interface{}{"file": file}, &out); err != nil {
		return nil, graphql.AppError(err, "failed to upload file")
	}
	if out.SingleUpload == nil {
		return nil, common.NewBadGatewayError("failed to upload file", fmt.Errorf("singleUpload returned null"))
	}
	return out.SingleUpload, nil
}

// MultipleUpload uploads files in a single request
func (s *Service) MultipleUpload(ctx context.Context, files []graphql.Upload) ([]File, error) {
	if len(files) == 0 {
		return nil, common.NewBadRequestError("at least one file is required", nil)
	}

	var out struct {
		MultipleUpload []File `json:"multipleUpload"`
	}
	if err := s.client.Upload(ctx, MultipleUploadMutation, map[string]interface{}{"files": files}, &out); err != nil {
		return nil, graphql.AppError(err, "failed to upload files")
	}
	if out.MultipleUpload == nil {
		out.MultipleUpload = []File{}
	}
	return out.MultipleUpload, nil
}
