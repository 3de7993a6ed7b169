package dataset

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/abhisek/querygen/internal/datagen"
)

type parquetRecord struct {
	Instruction string `parquet:"instruction"`
	Input       string `parquet:"input"`
	Output      string `parquet:"output"`
}

func writeParquet(w io.Writer, records []datagen.Record) error {
	rows := make([]parquetRecord, 0, len(records))
	for _, rec := range records {
		rows = append(rows, parquetRecord{
			Instruction: rec.Instruction,
			Input:       rec.Input,
			Output:      rec.Output,
		})
	}

	writer := parquet.NewGenericWriter[parquetRecord](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// readParquet reads every row of a Parquet file of the given size.
func readParquet(r io.ReaderAt, size int64) ([]datagen.Record, error) {
	rows, err := parquet.Read[parquetRecord](r, size)
	if err != nil {
		return nil, fmt.Errorf("read parquet rows: %w", err)
	}

	records := make([]datagen.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, datagen.Record{
			Instruction: row.Instruction,
			Input:       row.Input,
			Output:      row.Output,
		})
	}
	return records, nil
}
