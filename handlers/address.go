package handlers

import (
	"context"
	"net/http"

	"github.com/gestao/cadastrobackend/database"
	"github.com/gestao/cadastrobackend/dto"
	"github.com/gestao/cadastrobackend/services"
)

type AddressHandler struct {
	Addresses *services.AddressService
	Paging    Paging
}

func (ah *AddressHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	addresses, err := ah.Addresses.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, nil)
		return
	}
	writeData(w, http.StatusOK, addresses)
}

type addressSearch func(ctx context.Context, page, size int, value string) (database.Page[dto.Address], error)

// search serves one of the paged address queries filtered by the query parameter param.
func (ah *AddressHandler) search(param string, find addressSearch) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, err := ah.Paging.parse(r)
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, err.Error())
			return
		}
		result, err := find(r.Context(), page, size, r.URL.Query().Get(param))
		if err != nil {
			writeServiceError(w, r, err, nil)
			return
		}
		writeData(w, http.StatusOK, result)
	}
}

// ListPage handles GET /addresses/list?page&quantity.
func (ah *AddressHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	ah.search("", func(ctx context.Context, page, size int, _ string) (database.Page[dto.Address], error) {
		return ah.Addresses.ListPage(ctx, page, size)
	})(w, r)
}

func (ah *AddressHandler) SearchByPostalCode(w http.ResponseWriter, r *http.Request) {
	ah.search("postalCode", ah.Addresses.FindByPostalCode)(w, r)
}

func (ah *AddressHandler) SearchByCity(w http.ResponseWriter, r *http.Request) {
	ah.search("city", ah.Addresses.FindByCity)(w, r)
}

func (ah *AddressHandler) SearchByState(w http.ResponseWriter, r *http.Request) {
	ah.search("state", ah.Addresses.FindByState)(w, r)
}

func (ah *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	addressID, err := pathID(r, "address_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	address, err := ah.Addresses.GetByID(r.Context(), addressID)
	if err != nil {
		writeServiceError(w, r, err, nil)
		return
	}
	writeData(w, http.StatusOK, address)
}

func (ah *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	addressID, err := pathID(r, "address_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ah.Addresses.Delete(r.Context(), addressID); err != nil {
		writeServiceError(w, r, err, false)
		return
	}
	writeData(w, http.StatusOK, true)
}
