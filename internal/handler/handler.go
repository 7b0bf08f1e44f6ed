package handler

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/arjunsth/image-transform-lambda/internal/catalog"
	"github.com/arjunsth/image-transform-lambda/internal/config"
	"github.com/arjunsth/image-transform-lambda/internal/storage"
	"github.com/arjunsth/image-transform-lambda/internal/transform"
)

// Step failures. Errors returned by Handle wrap one of these so callers
// can classify them with errors.Is.
var (
	ErrRetrieval = errors.New("retrieval error")
	ErrDecode    = errors.New("decode error")
	ErrStore     = errors.New("store error")
	ErrLogWrite  = errors.New("log-write error")
)

// Response is returned to the Lambda runtime on full success.
type Response struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

const successBody = "Image processed and logged successfully."

// Handler processes S3 object-created notifications: for each record it
// fetches the object, resizes it to the configured dimensions, re-encodes
// it under the format policy, stores the result in the destination bucket
// and records one metadata entry keyed by the object key.
type Handler struct {
	cfg     *config.Config
	store   storage.ObjectStore
	catalog catalog.EntryWriter
	log     zerolog.Logger
}

func New(cfg *config.Config, store storage.ObjectStore, cat catalog.EntryWriter, log zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, store: store, catalog: cat, log: log}
}

// Handle processes the event's records strictly in order. The first
// failure aborts the batch: earlier records keep their side effects,
// later records are never touched. There are no retries and no rollback.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	if len(event.Records) == 0 {
		return Response{}, errors.New("event contains no records")
	}

	for _, record := range event.Records {
		if err := h.process(ctx, record); err != nil {
			return Response{}, err
		}
	}

	return Response{StatusCode: 200, Body: successBody}, nil
}

func (h *Handler) process(ctx context.Context, record events.S3EventRecord) error {
	bucket := record.S3.Bucket.Name

	// S3 notifications URL-encode object keys.
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return fmt.Errorf("%w: bad object key %q: %v", ErrRetrieval, record.S3.Object.Key, err)
	}

	data, _, err := h.store.Fetch(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	img, err := transform.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
	}

	resized := transform.Resize(img, h.cfg.TargetWidth, h.cfg.TargetHeight)

	format := h.outputFormat(key)
	encoded, err := transform.Encode(resized, format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	outKey := h.cfg.OutputKey(key)
	if err := h.store.Store(ctx, h.cfg.DestinationBucket, outKey, encoded, format.ContentType); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	bounds := resized.Bounds()
	size := fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy())

	entry := catalog.NewEntry(key, bucket, h.cfg.DestinationBucket, size, format.Name)
	if err := h.catalog.Put(ctx, entry); err != nil {
		return fmt.Errorf("%w: %v", ErrLogWrite, err)
	}

	h.log.Info().
		Str("source_bucket", bucket).
		Str("key", key).
		Str("destination_key", outKey).
		Str("size", size).
		Str("format", format.Name).
		Msg("image processed")

	return nil
}

func (h *Handler) outputFormat(key string) transform.Format {
	if h.cfg.FormatPolicy == config.PolicyForceJPEG {
		return transform.JPEG
	}
	return transform.FormatForKey(key)
}
