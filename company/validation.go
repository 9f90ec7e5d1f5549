package company

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// Validate checks the DTO before it reaches the repository.
func (d CompanyDto) Validate() error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&d.Address, validation.Required, validation.Length(1, 200)),
		validation.Field(&d.Country, validation.Required, validation.Length(1, 60)),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid company").
			WithTextCode(TextCodeValidation)
	}
	return nil
}

// ValidateAll validates every DTO of a batch, reporting the first offending index.
func ValidateAll(dtos []CompanyDto) error {
	if len(dtos) == 0 {
		return goerrors.New("batch must contain at least one company", goerrors.CategoryValidation).
			WithTextCode(TextCodeValidation)
	}
	for i, dto := range dtos {
		if err := dto.Validate(); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid company in batch").
				WithTextCode(TextCodeValidation).
				WithMetadata(map[string]any{"index": i})
		}
	}
	return nil
}
