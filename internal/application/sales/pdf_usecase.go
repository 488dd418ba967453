package sales

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ReceiptPDFUseCase genera el recibo en PDF de una venta.
type ReceiptPDFUseCase struct {
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	generator     ReceiptPDFGenerator
}

// NewReceiptPDFUseCase construye el caso de uso.
func NewReceiptPDFUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	generator ReceiptPDFGenerator,
) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		generator:     generator,
	}
}

// GenerateReceipt arma los datos de la venta y delega en el generador PDF.
func (uc *ReceiptPDFUseCase) GenerateReceipt(ctx context.Context, companyID, saleID string) ([]byte, string, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", err
	}
	if sale == nil || sale.CompanyID != companyID {
		return nil, "", domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(sale.WarehouseID)
	if err != nil || wh == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, "", err
	}

	pdfItems := make([]SaleItemForPDF, 0, len(items))
	for _, it := range items {
		name, sku := it.ProductID, ""
		if product, err := uc.productRepo.GetByID(it.ProductID); err == nil && product != nil {
			name, sku = product.Name, product.SKU
		}
		pdfItems = append(pdfItems, SaleItemForPDF{Item: it, ProductName: name, SKU: sku})
	}

	data, err := uc.generator.GenerateReceiptPDF(ctx, sale, wh, pdfItems)
	if err != nil {
		return nil, "", err
	}
	return data, sale.Number + ".pdf", nil
}
