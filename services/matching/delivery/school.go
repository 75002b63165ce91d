package delivery

import (
	"schoolmatch/domain"

	"github.com/gofiber/fiber/v2"
)

type schoolHandler struct {
	suc domain.SchoolUseCase
}

func NewSchoolDelivery(router fiber.Router, uc domain.SchoolUseCase) {
	handler := &schoolHandler{
		suc: uc,
	}

	route := router.Group("/escolas")
	route.Get("/filtro/metodologia", handler.FilterByMethodology)
	route.Get("/filtro/preco", handler.FilterByPrice)
	route.Get("/filtro/avaliacao", handler.FilterByRating)
	route.Get("/filtro/localizacao", handler.FilterByLocation)

	route.Post("/", handler.CreateSchool)
	route.Get("/", handler.GetAllSchools)
	route.Get("/:id", handler.GetSchoolByID)
	route.Put("/:id", handler.UpdateSchool)
	route.Delete("/:id", handler.DeleteSchool)

	route.Get("/:id/avaliacoes", handler.GetEvaluations)
	route.Post("/:id/avaliacoes", handler.CreateEvaluation)
}

// CreateSchool godoc
// @Summary      Create school
// @Tags         Escolas
// @Accept       json
// @Produce      json
// @Param        escola body domain.SchoolCreateRequest true "school payload"
// @Success      201 {object} domain.SchoolResponse
// @Failure      400 {object} map[string]any
// @Router       /api/escolas [post]
func (sh *schoolHandler) CreateSchool(c *fiber.Ctx) error {
	var req domain.SchoolCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "CreateSchool", "Invalid request body", err)
	}

	school, err := sh.suc.CreateSchool(c.Context(), &req)
	if err != nil {
		return respondError(c, "CreateSchool", err)
	}

	return respondOK(c, fiber.StatusCreated, "CreateSchool", "School created successfully", domain.NewSchoolResponse(school))
}

// GetAllSchools godoc
// @Summary      List schools
// @Tags         Escolas
// @Produce      json
// @Success      200 {array} domain.SchoolResponse
// @Router       /api/escolas [get]
func (sh *schoolHandler) GetAllSchools(c *fiber.Ctx) error {
	schools, err := sh.suc.GetAllSchools(c.Context())
	if err != nil {
		return respondError(c, "GetAllSchools", err)
	}

	return respondOK(c, fiber.StatusOK, "GetAllSchools", "Schools retrieved successfully", domain.NewSchoolResponses(schools))
}

// GetSchoolByID godoc
// @Summary      Get school
// @Tags         Escolas
// @Produce      json
// @Param        id path int true "school id"
// @Success      200 {object} domain.SchoolResponse
// @Failure      404 {object} map[string]any
// @Router       /api/escolas/{id} [get]
func (sh *schoolHandler) GetSchoolByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "GetSchoolByID", "Converter failure on id", err)
	}

	school, err := sh.suc.GetSchoolByID(c.Context(), id)
	if err != nil {
		return respondError(c, "GetSchoolByID", err)
	}

	return respondOK(c, fiber.StatusOK, "GetSchoolByID", "School retrieved successfully", domain.NewSchoolResponse(school))
}

// UpdateSchool godoc
// @Summary      Partially update school
// @Description  Absent fields are left unchanged. A new cep replaces the whole address.
// @Tags         Escolas
// @Accept       json
// @Produce      json
// @Param        id path int true "school id"
// @Param        escola body domain.SchoolUpdateRequest true "fields to change"
// @Success      200 {object} domain.SchoolResponse
// @Failure      400 {object} map[string]any
// @Failure      404 {object} map[string]any
// @Router       /api/escolas/{id} [put]
func (sh *schoolHandler) UpdateSchool(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "UpdateSchool", "Converter failure on id", err)
	}

	var req domain.SchoolUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "UpdateSchool", "Invalid request body", err)
	}

	school, err := sh.suc.UpdateSchool(c.Context(), id, &req)
	if err != nil {
		return respondError(c, "UpdateSchool", err)
	}

	return respondOK(c, fiber.StatusOK, "UpdateSchool", "School updated successfully", domain.NewSchoolResponse(school))
}

// DeleteSchool godoc
// @Summary      Delete school and its evaluations
// @Tags         Escolas
// @Param        id path int true "school id"
// @Success      204
// @Failure      404 {object} map[string]any
// @Router       /api/escolas/{id} [delete]
func (sh *schoolHandler) DeleteSchool(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "DeleteSchool", "Converter failure on id", err)
	}

	if err := sh.suc.DeleteSchool(c.Context(), id); err != nil {
		return respondError(c, "DeleteSchool", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// FilterByMethodology godoc
// @Summary      Filter schools by methodology (case-insensitive substring)
// @Tags         Escolas
// @Param        metodologia query string true "methodology"
// @Success      200 {array} domain.SchoolResponse
// @Router       /api/escolas/filtro/metodologia [get]
func (sh *schoolHandler) FilterByMethodology(c *fiber.Ctx) error {
	schools, err := sh.suc.FilterByMethodology(c.Context(), c.Query("metodologia"))
	if err != nil {
		return respondError(c, "FilterByMethodology", err)
	}

	return respondOK(c, fiber.StatusOK, "FilterByMethodology", "Schools retrieved successfully", domain.NewSchoolResponses(schools))
}

// FilterByPrice godoc
// @Summary      Filter schools by monthly fee, bounds inclusive
// @Tags         Escolas
// @Param        min_preco query number true "minimum fee"
// @Param        max_preco query number true "maximum fee"
// @Success      200 {array} domain.SchoolResponse
// @Failure      400 {object} map[string]any
// @Router       /api/escolas/filtro/preco [get]
func (sh *schoolHandler) FilterByPrice(c *fiber.Ctx) error {
	minFee, err := requiredFloatQuery(c, "min_preco")
	if err != nil {
		return respondError(c, "FilterByPrice", err)
	}
	maxFee, err := requiredFloatQuery(c, "max_preco")
	if err != nil {
		return respondError(c, "FilterByPrice", err)
	}

	schools, err := sh.suc.FilterByPriceRange(c.Context(), minFee, maxFee)
	if err != nil {
		return respondError(c, "FilterByPrice", err)
	}

	return respondOK(c, fiber.StatusOK, "FilterByPrice", "Schools retrieved successfully", domain.NewSchoolResponses(schools))
}

// FilterByRating godoc
// @Summary      Filter schools by minimum rating, inclusive
// @Tags         Escolas
// @Param        min_avaliacao query number true "minimum rating"
// @Success      200 {array} domain.SchoolResponse
// @Failure      400 {object} map[string]any
// @Router       /api/escolas/filtro/avaliacao [get]
func (sh *schoolHandler) FilterByRating(c *fiber.Ctx) error {
	minRating, err := requiredFloatQuery(c, "min_avaliacao")
	if err != nil {
		return respondError(c, "FilterByRating", err)
	}

	schools, err := sh.suc.FilterByMinRating(c.Context(), minRating)
	if err != nil {
		return respondError(c, "FilterByRating", err)
	}

	return respondOK(c, fiber.StatusOK, "FilterByRating", "Schools retrieved successfully", domain.NewSchoolResponses(schools))
}

// FilterByLocation godoc
// @Summary      Filter schools by location (not implemented, returns every school)
// @Tags         Escolas
// @Param        latitude query number false "latitude"
// @Param        longitude query number false "longitude"
// @Success      200 {array} domain.SchoolResponse
// @Router       /api/escolas/filtro/localizacao [get]
func (sh *schoolHandler) FilterByLocation(c *fiber.Ctx) error {
	schools, err := sh.suc.FilterByLocation(c.Context(), c.QueryFloat("latitude"), c.QueryFloat("longitude"))
	if err != nil {
		return respondError(c, "FilterByLocation", err)
	}

	return respondOK(c, fiber.StatusOK, "FilterByLocation", "Schools retrieved successfully", domain.NewSchoolResponses(schools))
}

// CreateEvaluation godoc
// @Summary      Add an evaluation to a school
// @Description  Does not change the school's stored rating.
// @Tags         Escolas
// @Accept       json
// @Produce      json
// @Param        id path int true "school id"
// @Param        avaliacao body domain.EvaluationCreateRequest true "evaluation payload"
// @Success      201 {object} domain.EvaluationResponse
// @Failure      400 {object} map[string]any
// @Failure      404 {object} map[string]any
// @Router       /api/escolas/{id}/avaliacoes [post]
func (sh *schoolHandler) CreateEvaluation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "CreateEvaluation", "Converter failure on id", err)
	}

	var req domain.EvaluationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "CreateEvaluation", "Invalid request body", err)
	}

	eval, err := sh.suc.CreateEvaluation(c.Context(), id, &req)
	if err != nil {
		return respondError(c, "CreateEvaluation", err)
	}

	return respondOK(c, fiber.StatusCreated, "CreateEvaluation", "Evaluation created successfully", domain.NewEvaluationResponse(eval))
}

// GetEvaluations godoc
// @Summary      List evaluations of a school
// @Tags         Escolas
// @Produce      json
// @Param        id path int true "school id"
// @Success      200 {array} domain.EvaluationResponse
// @Failure      404 {object} map[string]any
// @Router       /api/escolas/{id}/avaliacoes [get]
func (sh *schoolHandler) GetEvaluations(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "GetEvaluations", "Converter failure on id", err)
	}

	evals, err := sh.suc.GetEvaluations(c.Context(), id)
	if err != nil {
		return respondError(c, "GetEvaluations", err)
	}

	return respondOK(c, fiber.StatusOK, "GetEvaluations", "Evaluations retrieved successfully", domain.NewEvaluationResponses(evals))
}
