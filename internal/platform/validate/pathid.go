// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/convert"
)

// KeyID is the Params key produced by [PathID].
const KeyID = "id"

// PathID validates the raw {id} route parameter: an integer >= 1.
func PathID(raw string) (Params, error) {
	id, ok := convert.ToInt64(raw)
	if !ok {
		return nil, apperr.FieldInvalid(KeyID, apperr.KindType, "ID must be an integer")
	}
	if id < 1 {
		return nil, apperr.FieldInvalid(KeyID, apperr.KindRange, "ID must be greater than or equal to 1")
	}
	return Params{KeyID: id}, nil
}

// Patch validates the body of an update route and chains it after the path
// validator. Keys from path, the id among them, survive whatever body carries.
func Patch(path Params, body any) (Params, error) {
	fields, err := Entity(body)
	if err != nil {
		return nil, err
	}
	return path.Merge(fields), nil
}
