package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nadimo15/pakomi-packaging/repository"
	"github.com/tealeg/xlsx"
)

// GET /admin/orders/export-excel
func ExportOrdersToExcel(orders repository.OrderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := orders.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "SubmittedAt", "ClientName", "Phone", "Email",
			"Wilaya", "Commune", "Items", "TotalPrice", "TotalWeight",
			"Status", "Carrier", "TrackingNumber",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range all {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.SubmittedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(o.ClientName)
			row.AddCell().SetValue(o.Phone)
			row.AddCell().SetValue(o.Email)
			row.AddCell().SetValue(o.Wilaya)
			row.AddCell().SetValue(o.Commune)
			row.AddCell().SetValue(len(o.LineItems))
			row.AddCell().SetValue(o.TotalPrice)
			row.AddCell().SetValue(o.TotalWeight)
			row.AddCell().SetValue(string(o.Status))

			carrier, tracking := "", ""
			if o.ShippingInfo != nil {
				carrier = o.ShippingInfo.Carrier
				tracking = o.ShippingInfo.TrackingNumber
			}
			row.AddCell().SetValue(carrier)
			row.AddCell().SetValue(tracking)
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
