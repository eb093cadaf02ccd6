package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gestao/cadastrobackend/dto"
	"github.com/gestao/cadastrobackend/services"
)

type PersonHandler struct {
	People    *services.PersonService
	Addresses *services.AddressService
	Paging    Paging
}

// decodeBody decodes a JSON request body into dst and writes the 400 itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, dto.ErrInvalidDate) {
			WriteAPIError(w, http.StatusBadRequest, err.Error())
		} else {
			WriteAPIError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		return false
	}
	return true
}

// saveStatus is 201 for a POST creating a new entity and 200 otherwise.
func saveStatus(r *http.Request, id uint) int {
	if r.Method == http.MethodPost && id == 0 {
		return http.StatusCreated
	}
	return http.StatusOK
}

// ListAll handles GET /people.
func (ph *PersonHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	people, err := ph.People.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, nil)
		return
	}
	writeData(w, http.StatusOK, people)
}

// ListPage handles GET /people/list?page&quantity.
func (ph *PersonHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	page, size, err := ph.Paging.parse(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := ph.People.ListPage(r.Context(), page, size)
	if err != nil {
		writeServiceError(w, r, err, nil)
		return
	}
	writeData(w, http.StatusOK, result)
}

// SearchByName handles GET /people/search-by-name?page&quantity&name.
func (ph *PersonHandler) SearchByName(w http.ResponseWriter, r *http.Request) {
	page, size, err := ph.Paging.parse(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := ph.People.FindByName(r.Context(), page, size, r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, r, err, nil)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (ph *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	personID, err := pathID(r, "person_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	person, err := ph.People.GetByID(r.Context(), personID)
	if err != nil {
		writeServiceError(w, r, err, nil)
		return
	}
	writeData(w, http.StatusOK, person)
}

// Save handles POST and PUT /people. The body's id selects create or update.
func (ph *PersonHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.Person
	if !decodeBody(w, r, &req) {
		return
	}
	saved, err := ph.People.Save(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, nil)
		return
	}
	writeData(w, saveStatus(r, req.ID), saved)
}

func (ph *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	personID, err := pathID(r, "person_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ph.People.Delete(r.Context(), personID); err != nil {
		writeServiceError(w, r, err, false)
		return
	}
	writeData(w, http.StatusOK, true)
}

// ListAddresses handles GET /people/{person_id}/addresses?page&quantity.
func (ph *PersonHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	personID, err := pathID(r, "person_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, size, err := ph.Paging.parse(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := ph.People.ListAddresses(r.Context(), personID, page, size)
	if err != nil {
		writeServiceError(w, r, err, nil)
		return
	}
	writeData(w, http.StatusOK, result)
}

// SaveAddress handles POST and PUT /people/{person_id}/addresses.
func (ph *PersonHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	personID, err := pathID(r, "person_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req dto.Address
	if !decodeBody(w, r, &req) {
		return
	}
	saved, err := ph.Addresses.Save(r.Context(), personID, req)
	if err != nil {
		writeServiceError(w, r, err, nil)
		return
	}
	writeData(w, saveStatus(r, req.ID), saved)
}

func (ph *PersonHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	personID, err := pathID(r, "person_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	addressID, err := pathID(r, "address_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ph.People.DeleteAddress(r.Context(), personID, addressID); err != nil {
		writeServiceError(w, r, err, false)
		return
	}
	writeData(w, http.StatusOK, true)
}
