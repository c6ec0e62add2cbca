package v1

import "github.com/elias3446/reporta/internal/models"

func locationDTOToModel(dto *LocationDTO) models.Location {
	if dto == nil {
		return models.Location{}
	}
	return models.Location{
		Latitude:       dto.Latitude,
		Longitude:      dto.Longitude,
		Address:        dto.Address,
		ReferencePoint: dto.ReferencePoint,
		Building:       dto.Building,
		Floor:          dto.Floor,
		Room:           dto.Room,
		AdditionalInfo: dto.AdditionalInfo,
	}
}

func locationModelToDTO(loc models.Location) LocationDTO {
	return LocationDTO{
		Latitude:       loc.Latitude,
		Longitude:      loc.Longitude,
		Address:        loc.Address,
		ReferencePoint: loc.ReferencePoint,
		Building:       loc.Building,
		Floor:          loc.Floor,
		Room:           loc.Room,
		AdditionalInfo: loc.AdditionalInfo,
	}
}

// updateDTOToReportModel converts an update request into a domain report.
func updateDTOToReportModel(dto UpdateReportRequest) *models.Report {
	return &models.Report{
		Title:       dto.Title,
		Description: dto.Description,
		CategoryID:  dto.CategoryID,
		TypeID:      dto.TypeID,
		Priority:    dto.Priority,
		Status:      dto.Status,
		Visibility:  dto.Visibility,
		AssignedTo:  dto.AssignedTo,
		Images:      dto.Images,
		Location:    locationDTOToModel(dto.Location),
	}
}

// modelToReportResponse converts a domain report into the response DTO.
func modelToReportResponse(model *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:             model.ID,
		Title:          model.Title,
		Description:    model.Description,
		CategoryID:     model.CategoryID,
		TypeID:         model.TypeID,
		Priority:       model.Priority,
		Status:         model.Status,
		Visibility:     model.Visibility,
		AssignedTo:     model.AssignedTo,
		ReporterID:     model.ReporterID,
		ReporterName:   model.ReporterName,
		ReporterAvatar: model.ReporterAvatar,
		Images:         model.Images,
		Location:       locationModelToDTO(model.Location),
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// modelsToReportResponses converts a slice of reports into response DTOs.
func modelsToReportResponses(reports []*models.Report) []*ReportResponse {
	responses := make([]*ReportResponse, len(reports))
	for i, report := range reports {
		responses[i] = modelToReportResponse(report)
	}
	return responses
}

func candidateToResponse(c *models.CandidateReport) *CandidateResponse {
	return &CandidateResponse{
		ID:                c.ID,
		Name:              c.Name,
		Description:       c.Description,
		CreatedAt:         c.CreatedAt,
		DistanceMeters:    c.DistanceMeters,
		ConfirmationCount: c.ConfirmationCount,
		Images:            c.Images,
		ReporterName:      c.ReporterName,
		ReporterAvatar:    c.ReporterAvatar,
		Priority:          c.Priority,
		Status:            c.Status,
	}
}

func candidatesToResponses(candidates []*models.CandidateReport) []*CandidateResponse {
	responses := make([]*CandidateResponse, len(candidates))
	for i, c := range candidates {
		responses[i] = candidateToResponse(c)
	}
	return responses
}
