// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/slug"
)

// DeriveSlug fills params[slugKey] from params[sourceKey] when no slug was
// given. It fails when the source yields an empty slug.
func DeriveSlug(params Params, slugKey, sourceKey string) error {
	if params.String(slugKey) != "" || !params.Has(sourceKey) {
		return nil
	}

	derived := slug.From(params.String(sourceKey))
	if derived == "" {
		return apperr.FieldInvalid(slugKey, apperr.KindFormat,
			slug.Humanize(slugKey)+" cannot be derived from "+slug.Humanize(sourceKey))
	}

	params[slugKey] = derived
	return nil
}
