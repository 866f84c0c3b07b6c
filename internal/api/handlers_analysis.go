package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GenerateAnalysis(c *fiber.Ctx) error {
	result, err := handler.analysisService.Generate(handler.profileID, handler.today())
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newAnalysisView(result))
}

func (handler *Handler) LatestAnalysis(c *fiber.Ctx) error {
	result, err := handler.analysisService.Latest(handler.profileID, handler.today())
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newAnalysisView(result))
}
