// @title        Pet Registry API
// @version      1.0
// @description  CRUD de mascotas: alta, listado, consulta, edición parcial y baja.
// @BasePath     /
package main
