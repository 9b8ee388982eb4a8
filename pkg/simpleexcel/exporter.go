package simpleexcel

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"
)

// =============================================================================
// Constants & Types
// =============================================================================

// ContentType is the MIME type of the workbooks produced here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// flushEvery bounds how many rows the stream writer buffers.
const flushEvery = 1000

// Formatter converts a raw field value into the value written to the cell.
type Formatter func(v interface{}) interface{}

// DataExporter renders data bound to template sections into an xlsx workbook.
type DataExporter struct {
	template *ReportTemplate
	// data holds data bound to specific section IDs
	data       map[string]interface{}
	formatters map[string]Formatter
}

// ReportTemplate represents the YAML structure.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate represents a sheet in the YAML.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig defines a section of data in a sheet. Sections on the same
// sheet are written top to bottom with one blank row between them.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	ShowHeader  bool           `yaml:"show_header"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig defines a column in a section.
type ColumnConfig struct {
	FieldName string  `yaml:"field_name"` // Struct field name or map key
	Header    string  `yaml:"header"`
	Width     float64 `yaml:"width"`
	Formatter string  `yaml:"formatter"` // name passed to RegisterFormatter
}

// StyleTemplate defines basic styling.
type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // Hex color
}

type FillTemplate struct {
	Color string `yaml:"color"` // Hex color
}

// =============================================================================
// Constructors
// =============================================================================

// ParseTemplate decodes and checks a YAML report template.
func ParseTemplate(raw []byte) (*ReportTemplate, error) {
	var tmpl ReportTemplate
	if err := yaml.Unmarshal(raw, &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(tmpl.Sheets) == 0 {
		return nil, fmt.Errorf("template has no sheets")
	}
	for _, sh := range tmpl.Sheets {
		if strings.TrimSpace(sh.Name) == "" {
			return nil, fmt.Errorf("template sheet without a name")
		}
		for _, sec := range sh.Sections {
			for i, col := range sec.Columns {
				if col.FieldName == "" {
					return nil, fmt.Errorf("sheet %q section %q column %d has no field_name", sh.Name, sec.ID, i+1)
				}
			}
		}
	}
	return &tmpl, nil
}

// LoadTemplateFile reads and parses the YAML template at path.
func LoadTemplateFile(path string) (*ReportTemplate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open yaml file: %w", err)
	}
	tmpl, err := ParseTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tmpl, nil
}

// NewDataExporter starts an export laid out by tmpl. The template is only
// read, so one parsed template can serve concurrent exports.
func NewDataExporter(tmpl *ReportTemplate) *DataExporter {
	return &DataExporter{
		template:   tmpl,
		data:       make(map[string]interface{}),
		formatters: make(map[string]Formatter),
	}
}

// =============================================================================
// Fluent API
// =============================================================================

// BindSectionData binds a slice of structs or maps to a section ID.
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

// RegisterFormatter makes fn available to columns naming it.
func (e *DataExporter) RegisterFormatter(name string, fn Formatter) *DataExporter {
	e.formatters[name] = fn
	return e
}

// =============================================================================
// Output
// =============================================================================

// StreamTo writes the workbook to w. Rows go through excelize's stream
// writer so large exports do not hold every cell in memory.
func (e *DataExporter) StreamTo(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheetTmpl := range e.template.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheetTmpl.Name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheetTmpl.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheetTmpl.Name, err)
		}

		sw, err := f.NewStreamWriter(sheetTmpl.Name)
		if err != nil {
			return fmt.Errorf("failed to create stream writer: %w", err)
		}
		if err := e.streamSheet(f, sw, sheetTmpl); err != nil {
			return err
		}
		if err := sw.Flush(); err != nil {
			return fmt.Errorf("failed to flush stream: %w", err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// ToBytes exports the workbook to an in-memory byte slice.
func (e *DataExporter) ToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := e.StreamTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Rendering Logic
// =============================================================================

func (e *DataExporter) streamSheet(f *excelize.File, sw *excelize.StreamWriter, sheet SheetTemplate) error {
	// the stream writer only accepts widths before the first row
	for col, width := range columnWidths(sheet.Sections) {
		if width > 0 {
			if err := sw.SetColWidth(col, col, width); err != nil {
				return fmt.Errorf("set width of column %d: %w", col, err)
			}
		}
	}

	rowNum := 1
	for _, sec := range sheet.Sections {
		if sec.Title != "" {
			styleID, err := createStyle(f, sec.TitleStyle)
			if err != nil {
				return err
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := sw.SetRow(cell, []interface{}{sec.Title}, excelize.RowOpts{StyleID: styleID}); err != nil {
				return fmt.Errorf("write title of section %q: %w", sec.ID, err)
			}
			rowNum++
		}

		if sec.ShowHeader && len(sec.Columns) > 0 {
			styleID, err := createStyle(f, sec.HeaderStyle)
			if err != nil {
				return err
			}
			headers := make([]interface{}, len(sec.Columns))
			for i, col := range sec.Columns {
				headers[i] = excelize.Cell{StyleID: styleID, Value: col.Header}
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := sw.SetRow(cell, headers); err != nil {
				return fmt.Errorf("write header of section %q: %w", sec.ID, err)
			}
			rowNum++
		}

		next, err := e.streamRows(sw, sec, rowNum)
		if err != nil {
			return err
		}
		// blank row between sections
		rowNum = next + 1
	}
	return nil
}

func (e *DataExporter) streamRows(sw *excelize.StreamWriter, sec SectionConfig, rowNum int) (int, error) {
	bound, ok := e.data[sec.ID]
	if !ok || bound == nil {
		return rowNum, nil
	}
	v := reflect.ValueOf(bound)
	if v.Kind() != reflect.Slice {
		return rowNum, fmt.Errorf("section %q: expected a slice, got %v", sec.ID, v.Kind())
	}

	for i := 0; i < v.Len(); i++ {
		item := v.Index(i)
		row := make([]interface{}, len(sec.Columns))
		for j, col := range sec.Columns {
			val, err := extractValue(item, col.FieldName)
			if err != nil {
				return rowNum, fmt.Errorf("section %q row %d: %w", sec.ID, i+1, err)
			}
			if col.Formatter != "" {
				fn, ok := e.formatters[col.Formatter]
				if !ok {
					return rowNum, fmt.Errorf("section %q: unknown formatter %q", sec.ID, col.Formatter)
				}
				val = fn(val)
			}
			row[j] = val
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := sw.SetRow(cell, row); err != nil {
			return rowNum, fmt.Errorf("error writing row %d: %w", i+1, err)
		}
		rowNum++

		if rowNum%flushEvery == 0 {
			if err := sw.Flush(); err != nil {
				return rowNum, fmt.Errorf("error flushing rows: %w", err)
			}
		}
	}
	return rowNum, nil
}

// columnWidths returns the widest configured width per 1-based column.
func columnWidths(sections []SectionConfig) map[int]float64 {
	widths := make(map[int]float64)
	for _, sec := range sections {
		for i, col := range sec.Columns {
			if col.Width > widths[i+1] {
				widths[i+1] = col.Width
			}
		}
	}
	return widths
}

// extractValue reads fieldName from a struct (or pointer to one) or a map
// keyed by string.
func extractValue(item reflect.Value, fieldName string) (interface{}, error) {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return nil, nil
		}
		item = item.Elem()
	}

	switch item.Kind() {
	case reflect.Struct:
		f := item.FieldByName(fieldName)
		if !f.IsValid() {
			return nil, fmt.Errorf("field %q not found on %s", fieldName, item.Type())
		}
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				return nil, nil
			}
			f = f.Elem()
		}
		return f.Interface(), nil
	case reflect.Map:
		v := item.MapIndex(reflect.ValueOf(fieldName))
		if !v.IsValid() {
			return "", nil
		}
		return v.Interface(), nil
	}
	return nil, fmt.Errorf("cannot read field %q from %v", fieldName, item.Kind())
}

func createStyle(f *excelize.File, tmpl *StyleTemplate) (int, error) {
	if tmpl == nil {
		return 0, nil
	}
	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	return id, nil
}
