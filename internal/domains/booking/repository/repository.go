package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"homestay/config"
	"homestay/infras/otel"
	"homestay/internal/domains/booking/model"
	"homestay/shared"
	"homestay/shared/constant"
	"homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/logger"

	"google.golang.org/api/sheets/v4"
)

const (
	valueInputOptionRaw = "RAW"
	readRange           = "A:H"
)

// RecordStore persists booking rows in an append-only tabular store. Rows are
// never deleted; payment confirmation mutates two cells of an existing row.
type RecordStore interface {
	Append(ctx context.Context, record model.Record) error
	FindMostRecentByPhone(ctx context.Context, phone string) (model.Row, error)
	UpdateCell(ctx context.Context, rowIndex, columnIndex int, value string) error
	GetAll(ctx context.Context, params dto.QueryParams) ([]model.Record, int, error)
}

type recordStoreImpl struct {
	svc    *sheets.Service
	config *config.Config
	otel   otel.Otel
}

func New(svc *sheets.Service, config *config.Config, otl otel.Otel) RecordStore {
	return &recordStoreImpl{
		svc:    svc,
		config: config,
		otel:   otl,
	}
}

func (repo *recordStoreImpl) Append(ctx context.Context, record model.Record) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Append", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute("booking.phone", record.Phone)

	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{record.Columns()},
	}

	_, err := repo.svc.Spreadsheets.Values.
		Append(repo.config.Sheets.SpreadsheetID, repo.sheetRange(readRange), valueRange).
		ValueInputOption(valueInputOptionRaw).
		Context(ctx).
		Do()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return failure.InternalError(fmt.Errorf("failed to append row (%s): %w", model.EntityName, err))
	}

	return nil
}

func (repo *recordStoreImpl) FindMostRecentByPhone(ctx context.Context, phone string) (model.Row, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.FindMostRecentByPhone", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	values, err := repo.readAll(ctx)
	if err != nil {
		scope.TraceError(err)

		return model.Row{}, err
	}

	row, found := model.MostRecentByPhone(values, phone)
	if !found {
		return model.Row{}, failure.NotFound(model.EntityName)
	}

	return row, nil
}

func (repo *recordStoreImpl) UpdateCell(ctx context.Context, rowIndex, columnIndex int, value string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.UpdateCell", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	cell := fmt.Sprintf("%s%d", ColumnLetter(columnIndex), rowIndex)
	scope.SetAttribute("booking.cell", cell)

	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}

	_, err := repo.svc.Spreadsheets.Values.
		Update(repo.config.Sheets.SpreadsheetID, repo.sheetRange(cell), valueRange).
		ValueInputOption(valueInputOptionRaw).
		Context(ctx).
		Do()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return failure.InternalError(fmt.Errorf("failed to update cell %s (%s): %w", cell, model.EntityName, err))
	}

	return nil
}

func (repo *recordStoreImpl) GetAll(ctx context.Context, params dto.QueryParams) ([]model.Record, int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	values, err := repo.readAll(ctx)
	if err != nil {
		scope.TraceError(err)

		return nil, 0, err
	}

	// Skip the header row and list newest bookings first.
	records := make([]model.Record, 0, len(values))
	for i := len(values) - 1; i >= 1; i-- {
		records = append(records, model.RecordFromColumns(values[i]))
	}

	total := len(records)
	start, end := shared.PageBounds(params.Page, params.Limit, total)

	return records[start:end], total, nil
}

func (repo *recordStoreImpl) readAll(ctx context.Context) ([][]interface{}, error) {
	res, err := repo.svc.Spreadsheets.Values.
		Get(repo.config.Sheets.SpreadsheetID, repo.sheetRange(readRange)).
		Context(ctx).
		Do()
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, failure.InternalError(fmt.Errorf("failed to read rows (%s): %w", model.EntityName, err))
	}

	return res.Values, nil
}

func (repo *recordStoreImpl) sheetRange(ref string) string {
	return fmt.Sprintf("%s!%s", repo.config.Sheets.SheetName, ref)
}

// ColumnLetter converts a 1-based column index to its A1 notation letter.
func ColumnLetter(column int) string {
	letters := ""
	for column > 0 {
		column--
		letters = string(rune('A'+column%26)) + letters
		column /= 26
	}

	return letters
}
