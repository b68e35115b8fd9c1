package handler

import (
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rotisserie/eris"

	"billsight/internal/domain"
)

// FirstObject returns the object referenced by the first record of an S3
// notification, with its key URL-decoded. Further records are ignored.
func FirstObject(evt events.S3Event) (domain.ObjectRef, error) {
	if len(evt.Records) == 0 {
		return domain.ObjectRef{}, domain.ErrEmptyEvent
	}
	rec := evt.Records[0].S3

	key, err := url.QueryUnescape(rec.Object.Key)
	if err != nil {
		return domain.ObjectRef{}, eris.Wrapf(err, "decoding object key %q", rec.Object.Key)
	}
	return domain.ObjectRef{Bucket: rec.Bucket.Name, Key: key}, nil
}
