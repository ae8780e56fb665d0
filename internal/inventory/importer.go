package inventory

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// Beklenen kolon sırası: ürün adı, kategori, birim, mevcut stok, minimum stok,
// birim maliyet, tedarikçi (opsiyonel)
const importMinColumns = 6

type ImportFailure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Imported int             `json:"imported"`
	Failed   []ImportFailure `json:"failed"`
}

// ImportXLSX: Excel dosyasından toplu stok kaydı ekler. Hatalı satırlar batch'i
// durdurmaz, sonuçta satır numarasıyla raporlanır.
func (s *Service) ImportXLSX(r io.Reader) (*ImportResult, error) {
	excelFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: Excel dosyası okunamadı", ErrInvalidInput)
	}
	defer excelFile.Close()

	sheetList := excelFile.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("%w: Excel dosyasında sheet bulunamadı", ErrInvalidInput)
	}

	rows, err := excelFile.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet okunamadı", ErrInvalidInput)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: Excel dosyası boş", ErrInvalidInput)
	}

	// İlk satır başlık satırı mı? ("ÜRÜN ADI", "NAME" gibi)
	startIndex := 0
	if len(rows[0]) > 0 {
		firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
		if strings.Contains(firstCell, "ÜRÜN") || strings.Contains(firstCell, "NAME") || firstCell == "AD" || firstCell == "ADI" {
			startIndex = 1
			log.Println("İçe aktarma: ilk satır başlık satırı olarak algılandı, atlanıyor")
		}
	}

	result := &ImportResult{Failed: make([]ImportFailure, 0)}

	for i := startIndex; i < len(rows); i++ {
		row := rows[i]
		rowNo := i + 1

		// Boş satırları atla
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		if len(row) < importMinColumns {
			result.Failed = append(result.Failed, ImportFailure{Row: rowNo, Reason: "eksik kolon (en az 6 kolon gerekli)"})
			continue
		}

		currentStock, err1 := parseImportNumber(row[3])
		minimumStock, err2 := parseImportNumber(row[4])
		unitCost, err3 := parseImportNumber(row[5])
		if err1 != nil || err2 != nil || err3 != nil {
			result.Failed = append(result.Failed, ImportFailure{Row: rowNo, Reason: "sayısal kolon okunamadı"})
			continue
		}

		supplier := ""
		if len(row) > 6 {
			supplier = row[6]
		}

		_, err := s.Add(ItemInput{
			Name:         row[0],
			Category:     models.ItemCategory(strings.ToLower(strings.TrimSpace(row[1]))),
			Unit:         row[2],
			CurrentStock: currentStock,
			MinimumStock: minimumStock,
			UnitCost:     unitCost,
			Supplier:     supplier,
		})
		if err != nil {
			result.Failed = append(result.Failed, ImportFailure{Row: rowNo, Reason: err.Error()})
			continue
		}

		result.Imported++
	}

	return result, nil
}

// parseImportNumber: Türkçe formatlı sayıları da kabul et ("2,50" -> 2.50)
func parseImportNumber(cell string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", ".")
	return strconv.ParseFloat(cleaned, 64)
}

// POST /api/inventory-items/import
func ImportItemsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		result, err := svc.ImportXLSX(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(result)
	}
}
