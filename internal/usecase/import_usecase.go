package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/metalbaza/finledger/internal/domain"
	"github.com/metalbaza/finledger/internal/infrastructure/metrics"
)

// ImportUseCase bulk-loads externally authored transactions from semicolon-
// delimited CSV. Rows are inserted without an account, so imported history
// never moves any balance. A bad row is skipped and reported; the batch always
// runs to the end.
type ImportUseCase struct {
	transactionRepo TransactionRepository
	categoryRepo    CategoryRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
	logger          zerolog.Logger
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(
	transactionRepo TransactionRepository,
	categoryRepo CategoryRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ImportUseCase {
	return &ImportUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		idGen:           idGen,
		metrics:         m,
		logger:          logger,
	}
}

// ImportResult reports the outcome of one CSV batch.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors"`
}

// Header synonyms, matched case-insensitively. The reference export uses the
// Russian names; English exports reorder freely.
var headerSynonyms = map[string]string{
	"дата":           "date",
	"date":           "date",
	"тип":            "type",
	"type":           "type",
	"сумма":          "amount",
	"amount":         "amount",
	"категория":      "category",
	"category":       "category",
	"описание":       "description",
	"description":    "description",
	"способ_оплаты":  "payment",
	"payment_method": "payment",
	"оплата":         "payment",
}

const (
	rowErrBadDateOrAmount = "некорректная дата или сумма"
	rowErrUnparseable     = "не удалось разобрать строку"
)

// ImportCSV parses and inserts one batch. The reader must produce UTF-8 text
// with a header line.
func (uc *ImportUseCase) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := mapHeader(header)

	// One category load per batch; rows match case-insensitively in memory.
	categories, err := uc.categoryRepo.List(ctx, nil, false)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}
	line := 1 // header

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Total++
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Строка %d: %s: %v", line, rowErrUnparseable, err))
			uc.metrics.ImportRows.WithLabelValues("skipped").Inc()
			continue
		}

		result.Total++

		txn, reason := uc.parseRow(record, columns, categories)
		if reason != "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Строка %d: %s", line, reason))
			uc.metrics.ImportRows.WithLabelValues("skipped").Inc()
			continue
		}

		txn.ID = uc.idGen.Generate()
		if err := uc.transactionRepo.Create(ctx, txn); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Строка %d: %s", line, err.Error()))
			uc.metrics.ImportRows.WithLabelValues("skipped").Inc()
			continue
		}

		result.Imported++
		uc.metrics.ImportRows.WithLabelValues("imported").Inc()
	}

	uc.logger.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("total", result.Total).
		Msg("csv import finished")

	return result, nil
}

func mapHeader(header []string) map[string]int {
	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := headerSynonyms[key]; ok {
			columns[canonical] = i
		}
	}
	return columns
}

func (uc *ImportUseCase) parseRow(record []string, columns map[string]int, categories []*domain.Category) (*domain.Transaction, string) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, dateOK := parseImportDate(field("date"))
	amount, amountOK := parseImportAmount(field("amount"))
	if !dateOK || !amountOK {
		return nil, rowErrBadDateOrAmount
	}

	txnType := parseImportType(field("type"))

	txn := &domain.Transaction{
		Type:          txnType,
		Amount:        amount,
		Description:   field("description"),
		Date:          date,
		PaymentMethod: parseImportPayment(field("payment")),
		Metadata:      map[string]any{"source": "csv_import"},
		CreatedAt:     time.Now().UTC(),
	}

	if name := field("category"); name != "" {
		for _, c := range categories {
			if c.Type == txnType && strings.EqualFold(c.Name, name) {
				txn.CategoryID = &c.ID
				break
			}
		}
	}

	return txn, ""
}

// parseImportDate accepts dd.mm.yyyy and yyyy-mm-dd.
func parseImportDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"02.01.2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// parseImportAmount accepts a comma as decimal separator and requires a
// positive value.
func parseImportAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")

	amount, err := decimal.NewFromString(s)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}

	return amount, true
}

func parseImportType(s string) domain.TransactionType {
	switch strings.ToLower(s) {
	case "доход", "income", "приход":
		return domain.TransactionTypeIncome
	}
	return domain.TransactionTypeExpense
}

func parseImportPayment(s string) domain.PaymentMethod {
	switch strings.ToLower(s) {
	case "карта", "карточка", "card":
		return domain.PaymentMethodCard
	case "перевод", "безнал", "transfer", "bank":
		return domain.PaymentMethodTransfer
	case "другое", "other":
		return domain.PaymentMethodOther
	}
	return domain.PaymentMethodCash
}
