package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/mock"
	"github.com/MKhiriev/go-exam-admin/internal/store"
)

func TestFileService_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := mock.NewMockFileStorage(ctrl)
	svc := NewFileService(storage, logger.Nop())

	var stored string
	storage.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name string, r io.Reader) (int64, error) {
			stored = name
			data, err := io.ReadAll(r)
			return int64(len(data)), err
		})

	url, err := svc.Save(context.Background(), "Diagram.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(stored, ".png"))
	assert.Equal(t, FilesURLPrefix+stored, url)
}

func TestFileService_Save_RejectsNonImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewFileService(mock.NewMockFileStorage(ctrl), logger.Nop())

	for _, name := range []string{"run.exe", "noext", "page.html"} {
		_, err := svc.Save(context.Background(), name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidDataProvided, name)
	}
}

func TestFileService_Save_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := mock.NewMockFileStorage(ctrl)
	svc := NewFileService(storage, logger.Nop())
	storage.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), store.ErrFileTooLarge)

	_, err := svc.Save(context.Background(), "a.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.True(t, errors.Is(err, store.ErrFileTooLarge))
}

func TestFileService_Dir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := mock.NewMockFileStorage(ctrl)
	storage.EXPECT().Dir().Return("/var/uploads")

	assert.Equal(t, "/var/uploads", NewFileService(storage, logger.Nop()).Dir())
}
