package services

import (
	"encoding/csv"
	"fmt"
	"main/model"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

var exportHeader = []string{
	"rollNo", "studentName", "course", "className", "teacherName", "timestamp", "distance",
}

// CSVExporter appends committed attendance records to one CSV file per class
// name. It is the durable side channel for an otherwise in-memory service:
// the process can be restarted without losing already-exported rows.
type CSVExporter struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per-class file locks
}

func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
}

// fileLock returns the lock for one export file. Appends for different
// classes run concurrently; appends for the same class serialize so rows
// land in commit order.
func (e *CSVExporter) fileLock(filename string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[filename]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[filename] = lock
	}
	return lock
}

// Export appends a record to the class's CSV file, creating the file with a
// header row on first write.
func (e *CSVExporter) Export(record *model.AttendanceRecord) error {
	if record == nil {
		return fmt.Errorf("cannot export nil record")
	}

	filename := fmt.Sprintf("attendance_%s.csv", strings.ReplaceAll(record.ClassName, " ", "_"))
	lock := e.fileLock(filename)
	lock.Lock()
	defer lock.Unlock()

	path := filepath.Join(e.dir, filename)
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open export file %s: %w", filename, err)
	}

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(exportHeader); err != nil {
			file.Close()
			return fmt.Errorf("failed to write export header: %w", err)
		}
	}

	row := []string{
		record.RollNo,
		record.StudentName,
		record.Course,
		record.ClassName,
		record.TeacherName,
		record.Timestamp.Format(time.RFC3339),
		strconv.FormatFloat(record.Distance, 'f', 1, 64),
	}
	if err := writer.Write(row); err != nil {
		file.Close()
		return fmt.Errorf("failed to write export row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush export file %s: %w", filename, err)
	}

	return file.Close()
}
